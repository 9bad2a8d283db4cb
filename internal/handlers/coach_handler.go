package handlers

import (
	"context"
	"math"
	"strconv"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type coachDirectoryService interface {
	ListCoaches(ctx context.Context, page, per int) ([]models.CoachListItem, int, error)
	GetCoach(ctx context.Context, coachID uuid.UUID) (*models.CoachDetail, error)
	ListCoachCourses(ctx context.Context, coachID uuid.UUID) ([]models.CourseSummary, error)
}

// CoachHandler serves the public coach directory.
type CoachHandler struct {
	service coachDirectoryService
}

func NewCoachHandler(service coachDirectoryService) *CoachHandler {
	return &CoachHandler{service: service}
}

func (h *CoachHandler) ListCoaches(c *fiber.Ctx) error {
	page, err := parsePageParam(c.Query("page"), 1)
	if err != nil {
		return badRequest(c, "page must be a positive integer")
	}
	per, err := parsePageParam(c.Query("per"), defaultPageLimit)
	if err != nil {
		return badRequest(c, "per must be a positive integer")
	}
	if per > maxPageLimit {
		per = maxPageLimit
	}
	if page-1 > math.MaxInt/per {
		return badRequest(c, "page is out of range")
	}

	coaches, total, err := h.service.ListCoaches(c.Context(), page, per)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"coaches":    coaches,
		"pagination": buildPaginationMeta(page, per, total),
	})
}

func (h *CoachHandler) GetCoach(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	detail, err := h.service.GetCoach(c.Context(), coachID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *CoachHandler) ListCoachCourses(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	courses, err := h.service.ListCoachCourses(c.Context(), coachID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func parsePageParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}
