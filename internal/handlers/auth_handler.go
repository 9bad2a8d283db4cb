package handlers

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
)

type authService interface {
	Signup(ctx context.Context, input services.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type AuthHandler struct {
	service authService
}

func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,username"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	user, err := h.service.Signup(c.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":   user.ID,
			"name": user.Name,
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	token, user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"name": user.Name,
		},
	})
}
