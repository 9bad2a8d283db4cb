package services

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerTx is the view of the booking ledger available inside one admission
// transaction. Missing rows are reported as pgx.ErrNoRows.
type LedgerTx interface {
	LockUser(ctx context.Context, userID uuid.UUID) error
	LockCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error)
	HasActiveBooking(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	PurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error)
	ActiveBookingsByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ActiveBookingsByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
	CreateBooking(ctx context.Context, userID, courseID uuid.UUID) (*models.Booking, error)
}

// Ledger is the booking store. WithinTx commits when fn returns nil and rolls
// back otherwise.
type Ledger interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
	CancelActive(ctx context.Context, userID, courseID uuid.UUID) (*models.Booking, error)
	SeatUsage(ctx context.Context, courseID uuid.UUID) (models.SeatUsage, error)
}

type PgLedger struct {
	db *pgxpool.Pool
}

func NewPgLedger(db *pgxpool.Pool) *PgLedger {
	return &PgLedger{db: db}
}

func (l *PgLedger) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&pgLedgerTx{
		users:    repository.NewUserRepository(tx),
		courses:  repository.NewCourseRepository(tx),
		bookings: repository.NewBookingRepository(tx),
		credits:  repository.NewCreditRepository(tx),
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (l *PgLedger) CancelActive(ctx context.Context, userID, courseID uuid.UUID) (*models.Booking, error) {
	return repository.NewBookingRepository(l.db).CancelActive(ctx, userID, courseID, nil)
}

func (l *PgLedger) SeatUsage(ctx context.Context, courseID uuid.UUID) (models.SeatUsage, error) {
	course, err := repository.NewCourseRepository(l.db).GetByID(ctx, courseID)
	if err != nil {
		return models.SeatUsage{}, err
	}
	taken, err := repository.NewBookingRepository(l.db).CountActiveByCourse(ctx, courseID)
	if err != nil {
		return models.SeatUsage{}, err
	}
	return models.SeatUsage{
		CourseID:        courseID,
		SeatsTaken:      taken,
		MaxParticipants: course.MaxParticipants,
	}, nil
}

type pgLedgerTx struct {
	users    *repository.UserRepository
	courses  *repository.CourseRepository
	bookings *repository.BookingRepository
	credits  *repository.CreditRepository
}

func (t *pgLedgerTx) LockUser(ctx context.Context, userID uuid.UUID) error {
	return t.users.LockByID(ctx, userID)
}

func (t *pgLedgerTx) LockCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	return t.courses.GetByIDForUpdate(ctx, courseID)
}

func (t *pgLedgerTx) HasActiveBooking(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return t.bookings.HasActive(ctx, userID, courseID)
}

func (t *pgLedgerTx) PurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	return t.credits.SumPurchasedCredits(ctx, userID)
}

func (t *pgLedgerTx) ActiveBookingsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return t.bookings.CountActiveByUser(ctx, userID)
}

func (t *pgLedgerTx) ActiveBookingsByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return t.bookings.CountActiveByCourse(ctx, courseID)
}

func (t *pgLedgerTx) CreateBooking(ctx context.Context, userID, courseID uuid.UUID) (*models.Booking, error) {
	return t.bookings.Create(ctx, userID, courseID)
}
