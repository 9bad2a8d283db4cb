package services

import (
	"context"
	"errors"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrCourseNotFound    = apperr.NotFound("invalid id")
	ErrAlreadyBooked     = apperr.Conflict("already booked")
	ErrNoCreditRemaining = apperr.CapacityExceeded("no credits remaining")
	ErrCourseFull        = apperr.CapacityExceeded("course full")
	ErrNotBooked         = apperr.NotFound("not booked")
	ErrUserNotFound      = apperr.Unauthorized("user not found")
)

// SeatPublisher receives the seat usage of a course after a booking change
// has committed.
type SeatPublisher interface {
	PublishSeats(usage models.SeatUsage)
}

type BookingService struct {
	ledger    Ledger
	publisher SeatPublisher
}

func NewBookingService(ledger Ledger, publisher SeatPublisher) *BookingService {
	return &BookingService{ledger: ledger, publisher: publisher}
}

// BookCourse admits the caller to a course. Checks run in a fixed order and
// the first failure wins: course exists, no active booking, a credit left, a
// seat left. The user row is locked before the course row.
func (s *BookingService) BookCourse(
	ctx context.Context,
	identity models.Identity,
	courseID uuid.UUID,
) (*models.Booking, error) {
	var (
		booking *models.Booking
		usage   models.SeatUsage
	)

	err := s.ledger.WithinTx(ctx, func(tx LedgerTx) error {
		if err := tx.LockUser(ctx, identity.UserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}

		course, err := tx.LockCourse(ctx, courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrCourseNotFound
			}
			return err
		}

		booked, err := tx.HasActiveBooking(ctx, identity.UserID, courseID)
		if err != nil {
			return err
		}
		if booked {
			return ErrAlreadyBooked
		}

		purchased, err := tx.PurchasedCredits(ctx, identity.UserID)
		if err != nil {
			return err
		}
		used, err := tx.ActiveBookingsByUser(ctx, identity.UserID)
		if err != nil {
			return err
		}
		balance := models.CreditBalance{Purchased: purchased, Used: used}
		if balance.Remaining() <= 0 {
			return ErrNoCreditRemaining
		}

		taken, err := tx.ActiveBookingsByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if taken >= course.MaxParticipants {
			return ErrCourseFull
		}

		booking, err = tx.CreateBooking(ctx, identity.UserID, courseID)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrAlreadyBooked
			}
			return err
		}

		usage = models.SeatUsage{
			CourseID:        courseID,
			SeatsTaken:      taken + 1,
			MaxParticipants: course.MaxParticipants,
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.publish(usage)
	return booking, nil
}

// CancelBooking closes the caller's active booking on the course. A second
// cancel finds nothing active and fails with ErrNotBooked.
func (s *BookingService) CancelBooking(
	ctx context.Context,
	identity models.Identity,
	courseID uuid.UUID,
) (*models.Booking, error) {
	booking, err := s.ledger.CancelActive(ctx, identity.UserID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotBooked
		}
		return nil, apperr.Internal("cancel booking", err)
	}

	if s.publisher != nil {
		usage, err := s.ledger.SeatUsage(ctx, courseID)
		if err != nil {
			logger.Log.Warn("seat usage lookup failed after cancel, skipping update",
				zap.String("course_id", courseID.String()), zap.Error(err))
			return booking, nil
		}
		s.publisher.PublishSeats(usage)
	}
	return booking, nil
}

func (s *BookingService) publish(usage models.SeatUsage) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishSeats(usage)
}

// asAppError passes *apperr.Error values through and wraps anything else as
// an internal failure.
func asAppError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal("unexpected persistence failure", err)
}
