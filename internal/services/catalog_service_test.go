package services

import (
	"context"
	"testing"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCreditStore struct {
	packages    []models.CreditPackage
	createErr   error
	deleteErr   error
	purchaseErr error
	lastCreate  models.CreditPackage
}

func (s *stubCreditStore) ListPackages(context.Context) ([]models.CreditPackage, error) {
	return s.packages, nil
}

func (s *stubCreditStore) CreatePackage(_ context.Context, pkg *models.CreditPackage) error {
	s.lastCreate = *pkg
	if s.createErr != nil {
		return s.createErr
	}
	pkg.ID = uuid.New()
	return nil
}

func (s *stubCreditStore) DeletePackage(context.Context, uuid.UUID) error {
	return s.deleteErr
}

func (s *stubCreditStore) Purchase(_ context.Context, userID, packageID uuid.UUID) (*models.CreditPurchase, error) {
	if s.purchaseErr != nil {
		return nil, s.purchaseErr
	}
	return &models.CreditPurchase{ID: uuid.New(), UserID: userID, CreditPackageID: &packageID, PurchasedCredits: 7, PricePaid: 1400}, nil
}

type stubSkillStore struct {
	createErr error
	deleteErr error
}

func (s *stubSkillStore) List(context.Context) ([]models.Skill, error) {
	return []models.Skill{{ID: uuid.New(), Name: "Yoga"}}, nil
}

func (s *stubSkillStore) Create(_ context.Context, skill *models.Skill) error {
	if s.createErr != nil {
		return s.createErr
	}
	skill.ID = uuid.New()
	return nil
}

func (s *stubSkillStore) Delete(context.Context, uuid.UUID) error {
	return s.deleteErr
}

func TestCreatePackageTrimsNameAndMapsDuplicate(t *testing.T) {
	store := &stubCreditStore{}
	service := NewCreditService(store)

	pkg, err := service.CreatePackage(context.Background(), CreatePackageInput{Name: " 7 credits ", CreditAmount: 7, Price: 1400})
	require.NoError(t, err)
	assert.Equal(t, "7 credits", pkg.Name)
	assert.NotEqual(t, uuid.Nil, pkg.ID)

	store.createErr = &pgconn.PgError{Code: "23505"}
	_, err = service.CreatePackage(context.Background(), CreatePackageInput{Name: "7 credits", CreditAmount: 7, Price: 1400})
	require.ErrorIs(t, err, ErrPackageNameTaken)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestPurchaseUnknownPackageIsNotFound(t *testing.T) {
	store := &stubCreditStore{purchaseErr: pgx.ErrNoRows}
	service := NewCreditService(store)

	_, err := service.Purchase(context.Background(), models.Identity{UserID: uuid.New(), Role: models.RoleUser}, uuid.New())
	require.ErrorIs(t, err, ErrPackageNotFound)
}

func TestPurchaseRecordsCallerAsBuyer(t *testing.T) {
	service := NewCreditService(&stubCreditStore{})
	identity := models.Identity{UserID: uuid.New(), Role: models.RoleUser}

	purchase, err := service.Purchase(context.Background(), identity, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, purchase.UserID)
}

func TestDeletePackageMissingIsNotFound(t *testing.T) {
	service := NewCreditService(&stubCreditStore{deleteErr: pgx.ErrNoRows})

	err := service.DeletePackage(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrPackageNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSkillServiceMapsStoreErrors(t *testing.T) {
	store := &stubSkillStore{createErr: &pgconn.PgError{Code: "23505"}}
	service := NewSkillService(store)

	_, err := service.Create(context.Background(), "Yoga")
	require.ErrorIs(t, err, ErrSkillNameTaken)

	store.deleteErr = pgx.ErrNoRows
	require.ErrorIs(t, service.Delete(context.Background(), uuid.New()), ErrSkillNotFound)

	store.deleteErr = &pgconn.PgError{Code: "23503"}
	require.ErrorIs(t, service.Delete(context.Background(), uuid.New()), ErrSkillInUse)
}
