package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubCreditService struct {
	createErr     error
	purchaseErr   error
	lastInput     services.CreatePackageInput
	lastPackageID uuid.UUID
	lastIdentity  models.Identity
}

func (s *stubCreditService) ListPackages(context.Context) ([]models.CreditPackage, error) {
	return []models.CreditPackage{{ID: uuid.New(), Name: "7 Pass", CreditAmount: 7, Price: 1400}}, nil
}

func (s *stubCreditService) CreatePackage(_ context.Context, input services.CreatePackageInput) (*models.CreditPackage, error) {
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.CreditPackage{ID: uuid.New(), Name: input.Name, CreditAmount: input.CreditAmount, Price: input.Price}, nil
}

func (s *stubCreditService) Purchase(_ context.Context, identity models.Identity, packageID uuid.UUID) (*models.CreditPurchase, error) {
	s.lastIdentity = identity
	s.lastPackageID = packageID
	if s.purchaseErr != nil {
		return nil, s.purchaseErr
	}
	return &models.CreditPurchase{ID: uuid.New(), UserID: identity.UserID, CreditPackageID: &packageID}, nil
}

func (s *stubCreditService) DeletePackage(context.Context, uuid.UUID) error {
	return nil
}

type stubSkillService struct {
	createErr error
	deleteErr error
}

func (s *stubSkillService) List(context.Context) ([]models.Skill, error) {
	return nil, nil
}

func (s *stubSkillService) Create(_ context.Context, name string) (*models.Skill, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Skill{ID: uuid.New(), Name: name}, nil
}

func (s *stubSkillService) Delete(context.Context, uuid.UUID) error {
	return s.deleteErr
}

func TestCreateCreditPackageForwardsInput(t *testing.T) {
	service := &stubCreditService{}
	handler := NewCreditPackageHandler(service)

	app := fiber.New()
	app.Post("/api/credit-package", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/credit-package", strings.NewReader(`{
		"name": "14 Pass",
		"credit_amount": 14,
		"price": 2520
	}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastInput.CreditAmount != 14 || service.lastInput.Price != 2520 {
		t.Fatalf("unexpected input %+v", service.lastInput)
	}
}

func TestCreateCreditPackageDuplicateNameIsConflict(t *testing.T) {
	handler := NewCreditPackageHandler(&stubCreditService{createErr: services.ErrPackageNameTaken})

	app := fiber.New()
	app.Post("/api/credit-package", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/credit-package", strings.NewReader(`{"name":"7 Pass","credit_amount":7,"price":1400}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestPurchaseCreditPackageUsesIdentity(t *testing.T) {
	service := &stubCreditService{}
	handler := NewCreditPackageHandler(service)
	identity := models.Identity{UserID: uuid.New(), Role: models.RoleUser}
	packageID := uuid.New()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, identity)
		return c.Next()
	})
	app.Post("/api/credit-package/:creditPackageId", handler.Purchase)

	req := httptest.NewRequest(http.MethodPost, "/api/credit-package/"+packageID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastIdentity != identity || service.lastPackageID != packageID {
		t.Fatalf("expected identity and package to be forwarded")
	}
}

func TestPurchaseUnknownCreditPackage(t *testing.T) {
	handler := NewCreditPackageHandler(&stubCreditService{purchaseErr: services.ErrPackageNotFound})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, models.Identity{UserID: uuid.New(), Role: models.RoleUser})
		return c.Next()
	})
	app.Post("/api/credit-package/:creditPackageId", handler.Purchase)

	req := httptest.NewRequest(http.MethodPost, "/api/credit-package/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateSkillRejectsBlankName(t *testing.T) {
	handler := NewSkillHandler(&stubSkillService{})

	app := fiber.New()
	app.Post("/api/skills", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/skills", strings.NewReader(`{"name":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp.Body); got != "name is required" {
		t.Fatalf("expected name is required, got %q", got)
	}
}

func TestDeleteSkillInUseIsConflict(t *testing.T) {
	handler := NewSkillHandler(&stubSkillService{deleteErr: services.ErrSkillInUse})

	app := fiber.New()
	app.Delete("/api/skills/:skillId", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/skills/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}
