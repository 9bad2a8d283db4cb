package handlers

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type creditApplicationService interface {
	ListPackages(ctx context.Context) ([]models.CreditPackage, error)
	CreatePackage(ctx context.Context, input services.CreatePackageInput) (*models.CreditPackage, error)
	Purchase(ctx context.Context, identity models.Identity, packageID uuid.UUID) (*models.CreditPurchase, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

type CreditPackageHandler struct {
	service creditApplicationService
}

func NewCreditPackageHandler(service creditApplicationService) *CreditPackageHandler {
	return &CreditPackageHandler{service: service}
}

type createCreditPackageRequest struct {
	Name         string `json:"name" validate:"notblank,max=50"`
	CreditAmount int    `json:"credit_amount" validate:"gt=0"`
	Price        int64  `json:"price" validate:"gt=0"`
}

func (h *CreditPackageHandler) List(c *fiber.Ctx) error {
	packages, err := h.service.ListPackages(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"credit_packages": packages})
}

func (h *CreditPackageHandler) Create(c *fiber.Ctx) error {
	var req createCreditPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	pkg, err := h.service.CreatePackage(c.Context(), services.CreatePackageInput{
		Name:         req.Name,
		CreditAmount: req.CreditAmount,
		Price:        req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"credit_package": pkg})
}

func (h *CreditPackageHandler) Purchase(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}
	packageID, ok := parseIDParam(c, "creditPackageId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	purchase, err := h.service.Purchase(c.Context(), identity, packageID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"purchase": purchase})
}

func (h *CreditPackageHandler) Delete(c *fiber.Ctx) error {
	packageID, ok := parseIDParam(c, "creditPackageId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.service.DeletePackage(c.Context(), packageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "credit package deleted"})
}
