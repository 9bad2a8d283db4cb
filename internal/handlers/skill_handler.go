package handlers

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type skillApplicationService interface {
	List(ctx context.Context) ([]models.Skill, error)
	Create(ctx context.Context, name string) (*models.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SkillHandler struct {
	service skillApplicationService
}

func NewSkillHandler(service skillApplicationService) *SkillHandler {
	return &SkillHandler{service: service}
}

type createSkillRequest struct {
	Name string `json:"name" validate:"notblank,max=50"`
}

func (h *SkillHandler) List(c *fiber.Ctx) error {
	skills, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"skills": skills})
}

func (h *SkillHandler) Create(c *fiber.Ctx) error {
	var req createSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	skill, err := h.service.Create(c.Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"skill": skill})
}

func (h *SkillHandler) Delete(c *fiber.Ctx) error {
	skillID, ok := parseIDParam(c, "skillId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.service.Delete(c.Context(), skillID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "skill deleted"})
}
