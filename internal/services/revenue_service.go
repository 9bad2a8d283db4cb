package services

import (
	"context"
	"strings"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidMonth = apperr.Validation("invalid month")

type coachActivityReader interface {
	CoachActivity(ctx context.Context, coachUserID uuid.UUID, from, to time.Time) (repository.CoachActivity, error)
}

type packageTotalsReader interface {
	PackageTotals(ctx context.Context) (repository.PackageTotals, error)
}

type RevenueService struct {
	bookings coachActivityReader
	packages packageTotalsReader
	now      func() time.Time
}

func NewRevenueService(bookings coachActivityReader, packages packageTotalsReader) *RevenueService {
	return &RevenueService{
		bookings: bookings,
		packages: packages,
		now:      time.Now,
	}
}

// CoachMonthlyRevenue reports the coach's active bookings created during the
// named month of the current UTC year. Revenue prices each booking at the
// catalogue's average price per credit, rounded down.
func (s *RevenueService) CoachMonthlyRevenue(
	ctx context.Context,
	coachUserID uuid.UUID,
	month string,
) (*models.RevenueReport, error) {
	monthNumber, ok := ParseMonth(month)
	if !ok {
		return nil, ErrInvalidMonth
	}

	from := time.Date(s.now().UTC().Year(), monthNumber, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	activity, err := s.bookings.CoachActivity(ctx, coachUserID, from, to)
	if err != nil {
		return nil, apperr.Internal("load coach activity", err)
	}

	report := &models.RevenueReport{
		Participants: activity.Participants,
		CourseCount:  activity.Bookings,
	}
	if activity.Bookings == 0 {
		return report, nil
	}

	totals, err := s.packages.PackageTotals(ctx)
	if err != nil {
		return nil, apperr.Internal("load package totals", err)
	}
	report.Revenue = revenueFor(activity.Bookings, totals)
	return report, nil
}

// ParseMonth accepts an English month name in any case.
func ParseMonth(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, true
		}
	}
	return 0, false
}

func revenueFor(bookings int, totals repository.PackageTotals) int64 {
	if totals.Credits <= 0 {
		return 0
	}
	numerator := decimal.NewFromInt(int64(bookings)).Mul(decimal.NewFromInt(totals.Price))
	quotient, _ := numerator.QuoRem(decimal.NewFromInt(totals.Credits), 0)
	return quotient.IntPart()
}
