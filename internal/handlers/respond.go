package handlers

import (
	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindCapacityExceeded:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": message} with the status of its kind.
// Internal failures are logged and never leak their cause.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.Log.Error("request failed",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(statusForKind(kind)).JSON(fiber.Map{"error": apperr.MessageOf(err)})
}

// respondBookingError reports every domain failure of the booking endpoints
// as 400, keeping 401 and 500 distinct.
func respondBookingError(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindInternal, apperr.KindUnauthorized:
		return respondError(c, err)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperr.MessageOf(err)})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func invalidToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
