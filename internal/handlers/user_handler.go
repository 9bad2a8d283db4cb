package handlers

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type userApplicationService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input services.ChangePasswordInput) error
	Purchases(ctx context.Context, userID uuid.UUID) ([]models.PurchasedPackage, error)
	CourseBookings(ctx context.Context, userID uuid.UUID) (*models.UserBookings, error)
}

type UserHandler struct {
	service userApplicationService
}

func NewUserHandler(service userApplicationService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,username"`
}

type changePasswordRequest struct {
	Password           string `json:"password" validate:"required,password"`
	NewPassword        string `json:"new_password" validate:"required,password"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,password"`
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	user, err := h.service.Profile(c.Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	user, err := h.service.UpdateName(c.Context(), identity.UserID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": fiber.Map{"name": user.Name}})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	if err := h.service.ChangePassword(c.Context(), identity.UserID, services.ChangePasswordInput{
		Password:           req.Password,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

func (h *UserHandler) ListPurchases(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	purchases, err := h.service.Purchases(c.Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"purchases": purchases})
}

func (h *UserHandler) ListCourseBookings(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	bookings, err := h.service.CourseBookings(c.Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}
