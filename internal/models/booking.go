package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	CourseID           uuid.UUID     `json:"course_id"`
	Status             BookingStatus `json:"status"`
	BookingAt          time.Time     `json:"booking_at"`
	CancelledAt        *time.Time    `json:"cancelled_at"`
	CancellationReason *string       `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

func (b Booking) Active() bool {
	return b.CancelledAt == nil
}

// SeatUsage is a recomputed view of a course's capacity.
type SeatUsage struct {
	CourseID        uuid.UUID `json:"course_id"`
	SeatsTaken      int       `json:"seats_taken"`
	MaxParticipants int       `json:"max_participants"`
}

type UserCourseBooking struct {
	CourseID   uuid.UUID     `json:"course_id"`
	Name       string        `json:"name"`
	StartAt    time.Time     `json:"start_at"`
	EndAt      time.Time     `json:"end_at"`
	MeetingURL string        `json:"meeting_url"`
	CoachName  string        `json:"coach_name"`
	Status     BookingStatus `json:"status"`
}

type UserBookings struct {
	CreditRemain  int                 `json:"credit_remain"`
	CreditUsage   int                 `json:"credit_usage"`
	CourseBooking []UserCourseBooking `json:"course_booking"`
}
