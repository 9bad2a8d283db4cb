package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPackageNameTaken = apperr.Conflict("credit package name already exists")
	ErrPackageNotFound  = apperr.NotFound("credit package not found")
)

type creditStore interface {
	ListPackages(ctx context.Context) ([]models.CreditPackage, error)
	CreatePackage(ctx context.Context, pkg *models.CreditPackage) error
	DeletePackage(ctx context.Context, id uuid.UUID) error
	Purchase(ctx context.Context, userID, packageID uuid.UUID) (*models.CreditPurchase, error)
}

type CreditService struct {
	credits creditStore
}

func NewCreditService(credits creditStore) *CreditService {
	return &CreditService{credits: credits}
}

func (s *CreditService) ListPackages(ctx context.Context) ([]models.CreditPackage, error) {
	packages, err := s.credits.ListPackages(ctx)
	if err != nil {
		return nil, apperr.Internal("list credit packages", err)
	}
	return packages, nil
}

type CreatePackageInput struct {
	Name         string
	CreditAmount int
	Price        int64
}

func (s *CreditService) CreatePackage(ctx context.Context, input CreatePackageInput) (*models.CreditPackage, error) {
	pkg := &models.CreditPackage{
		Name:         strings.TrimSpace(input.Name),
		CreditAmount: input.CreditAmount,
		Price:        input.Price,
	}
	if err := s.credits.CreatePackage(ctx, pkg); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPackageNameTaken
		}
		return nil, apperr.Internal("create credit package", err)
	}
	return pkg, nil
}

// Purchase records a purchase for the caller with the package's current
// credits and price copied onto it.
func (s *CreditService) Purchase(ctx context.Context, identity models.Identity, packageID uuid.UUID) (*models.CreditPurchase, error) {
	purchase, err := s.credits.Purchase(ctx, identity.UserID, packageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, apperr.Internal("purchase credit package", err)
	}
	return purchase, nil
}

func (s *CreditService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.credits.DeletePackage(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPackageNotFound
		}
		return apperr.Internal("delete credit package", err)
	}
	return nil
}
