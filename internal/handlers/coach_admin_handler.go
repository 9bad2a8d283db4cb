package handlers

import (
	"context"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type coachAdminService interface {
	Enroll(ctx context.Context, identity models.Identity, userID uuid.UUID, input services.CoachProfileInput) (*models.CoachProfile, error)
	Profile(ctx context.Context, identity models.Identity) (*models.CoachProfile, error)
	UpdateProfile(ctx context.Context, identity models.Identity, input services.CoachProfileInput) (*models.CoachProfile, error)
	CreateCourse(ctx context.Context, identity models.Identity, input services.CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, identity models.Identity, courseID uuid.UUID, input services.CourseInput) (*models.Course, error)
	OwnCourses(ctx context.Context, identity models.Identity) ([]models.CoachCourse, error)
	OwnCourse(ctx context.Context, identity models.Identity, courseID uuid.UUID) (*models.CoachCourseDetail, error)
}

type revenueService interface {
	CoachMonthlyRevenue(ctx context.Context, coachUserID uuid.UUID, month string) (*models.RevenueReport, error)
}

// CoachAdminHandler serves the coach back office.
type CoachAdminHandler struct {
	coaches coachAdminService
	revenue revenueService
}

func NewCoachAdminHandler(coaches coachAdminService, revenue revenueService) *CoachAdminHandler {
	return &CoachAdminHandler{coaches: coaches, revenue: revenue}
}

type coachProfileRequest struct {
	ExperienceYears int         `json:"experience_years" validate:"gte=0"`
	Description     string      `json:"description" validate:"notblank"`
	ProfileImageURL *string     `json:"profile_image_url" validate:"omitempty,https_url"`
	SkillIDs        []uuid.UUID `json:"skill_ids" validate:"omitempty,dive,required"`
}

type courseRequest struct {
	SkillID         uuid.UUID `json:"skill_id" validate:"required"`
	Name            string    `json:"name" validate:"notblank,max=100"`
	Description     string    `json:"description" validate:"notblank"`
	StartAt         time.Time `json:"start_at" validate:"required"`
	EndAt           time.Time `json:"end_at" validate:"required"`
	MaxParticipants int       `json:"max_participants" validate:"gt=0"`
	MeetingURL      string    `json:"meeting_url" validate:"required,https_url"`
}

func (r courseRequest) input() services.CourseInput {
	return services.CourseInput{
		SkillID:         r.SkillID,
		Name:            r.Name,
		Description:     r.Description,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		MaxParticipants: r.MaxParticipants,
		MeetingURL:      r.MeetingURL,
	}
}

func (r coachProfileRequest) input() services.CoachProfileInput {
	return services.CoachProfileInput{
		ExperienceYears: r.ExperienceYears,
		Description:     r.Description,
		ProfileImageURL: r.ProfileImageURL,
		SkillIDs:        r.SkillIDs,
	}
}

func (h *CoachAdminHandler) Enroll(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req coachProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	profile, err := h.coaches.Enroll(c.Context(), identity, userID, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"coach": profile})
}

func (h *CoachAdminHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	profile, err := h.coaches.Profile(c.Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"coach": profile})
}

func (h *CoachAdminHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	var req coachProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	profile, err := h.coaches.UpdateProfile(c.Context(), identity, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"coach": profile})
}

func (h *CoachAdminHandler) CreateCourse(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	course, err := h.coaches.CreateCourse(c.Context(), identity, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"course": course})
}

func (h *CoachAdminHandler) UpdateCourse(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if message := validateRequest(req); message != "" {
		return badRequest(c, message)
	}

	course, err := h.coaches.UpdateCourse(c.Context(), identity, courseID, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"course": course})
}

func (h *CoachAdminHandler) ListCourses(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	courses, err := h.coaches.OwnCourses(c.Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CoachAdminHandler) GetCourse(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	course, err := h.coaches.OwnCourse(c.Context(), identity, courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"course": course})
}

func (h *CoachAdminHandler) Revenue(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}

	report, err := h.revenue.CoachMonthlyRevenue(c.Context(), identity.UserID, c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
