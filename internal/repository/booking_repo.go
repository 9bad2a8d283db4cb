package repository

import (
	"context"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, course_id, status, booking_at, cancelled_at, cancellation_reason, created_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var booking models.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CourseID,
		&booking.Status,
		&booking.BookingAt,
		&booking.CancelledAt,
		&booking.CancellationReason,
		&booking.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) HasActive(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM course_booking
			WHERE user_id = $1 AND course_id = $2 AND cancelled_at IS NULL
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BookingRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_booking WHERE user_id = $1 AND cancelled_at IS NULL
	`, userID).Scan(&count)
	return count, err
}

func (r *BookingRepository) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_booking WHERE course_id = $1 AND cancelled_at IS NULL
	`, courseID).Scan(&count)
	return count, err
}

// Create inserts an active booking. A concurrent duplicate surfaces as a
// unique violation on the partial index over active rows.
func (r *BookingRepository) Create(ctx context.Context, userID, courseID uuid.UUID) (*models.Booking, error) {
	query := `
		INSERT INTO course_booking (user_id, course_id, status)
		VALUES ($1, $2, $3)
		RETURNING ` + bookingColumns
	return scanBooking(r.db.QueryRow(ctx, query, userID, courseID, models.BookingStatusBooked))
}

// CancelActive closes the caller's active booking in one guarded statement.
// pgx.ErrNoRows when there is nothing active to cancel.
func (r *BookingRepository) CancelActive(
	ctx context.Context,
	userID uuid.UUID,
	courseID uuid.UUID,
	reason *string,
) (*models.Booking, error) {
	query := `
		UPDATE course_booking
		SET cancelled_at = NOW(), status = $1, cancellation_reason = $2
		WHERE user_id = $3 AND course_id = $4 AND cancelled_at IS NULL
		RETURNING ` + bookingColumns
	return scanBooking(r.db.QueryRow(ctx, query, models.BookingStatusCancelled, reason, userID, courseID))
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.UserCourseBooking, error) {
	query := `
		SELECT b.course_id, c.name, c.start_at, c.end_at, c.meeting_url, u.name, b.status
		FROM course_booking b
		JOIN courses c ON c.id = b.course_id
		JOIN users u ON u.id = c.user_id
		WHERE b.user_id = $1
		ORDER BY c.start_at ASC, b.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.UserCourseBooking, 0)
	for rows.Next() {
		var booking models.UserCourseBooking
		if err := rows.Scan(
			&booking.CourseID,
			&booking.Name,
			&booking.StartAt,
			&booking.EndAt,
			&booking.MeetingURL,
			&booking.CoachName,
			&booking.Status,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CoachActivity aggregates active bookings created in [from, to) across the
// coach's courses.
type CoachActivity struct {
	Bookings     int
	Participants int
}

func (r *BookingRepository) CoachActivity(
	ctx context.Context,
	coachUserID uuid.UUID,
	from time.Time,
	to time.Time,
) (CoachActivity, error) {
	query := `
		SELECT COUNT(b.id), COUNT(DISTINCT b.user_id)
		FROM course_booking b
		JOIN courses c ON c.id = b.course_id
		WHERE c.user_id = $1
		  AND b.cancelled_at IS NULL
		  AND b.created_at >= $2
		  AND b.created_at < $3
	`
	var activity CoachActivity
	err := r.db.QueryRow(ctx, query, coachUserID, from, to).Scan(&activity.Bookings, &activity.Participants)
	return activity, err
}
