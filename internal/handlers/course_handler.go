package handlers

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type courseLister interface {
	ListSummaries(ctx context.Context) ([]models.CourseSummary, error)
}

type bookingApplicationService interface {
	BookCourse(ctx context.Context, identity models.Identity, courseID uuid.UUID) (*models.Booking, error)
	CancelBooking(ctx context.Context, identity models.Identity, courseID uuid.UUID) (*models.Booking, error)
}

type CourseHandler struct {
	courses  courseLister
	bookings bookingApplicationService
}

func NewCourseHandler(courses courseLister, bookings bookingApplicationService) *CourseHandler {
	return &CourseHandler{courses: courses, bookings: bookings}
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courses.ListSummaries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CourseHandler) BookCourse(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if _, err := h.bookings.BookCourse(c.Context(), identity, courseID); err != nil {
		return respondBookingError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return nil
}

func (h *CourseHandler) CancelBooking(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return invalidToken(c)
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if _, err := h.bookings.CancelBooking(c.Context(), identity, courseID); err != nil {
		return respondBookingError(c, err)
	}
	c.Status(fiber.StatusOK)
	return nil
}
