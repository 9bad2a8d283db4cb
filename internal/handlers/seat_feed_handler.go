package handlers

import (
	"context"
	"errors"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	seatws "github.com/Job-Wilhelm/course-booking/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type seatUsageReader interface {
	SeatUsage(ctx context.Context, courseID uuid.UUID) (models.SeatUsage, error)
}

// SeatFeedHandler streams live seat usage of a single course.
type SeatFeedHandler struct {
	seats seatUsageReader
	hub   *seatws.Hub
}

func NewSeatFeedHandler(seats seatUsageReader, hub *seatws.Hub) *SeatFeedHandler {
	return &SeatFeedHandler{seats: seats, hub: hub}
}

// Upgrade validates the course before the connection is upgraded. The
// snapshot itself is read after the client subscribes.
func (h *SeatFeedHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return badRequest(c, "invalid id")
	}

	_, err := h.seats.SeatUsage(c.Context(), courseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return badRequest(c, "invalid id")
	}
	if err != nil {
		return respondError(c, err)
	}

	c.Locals("seat_course_id", courseID)
	return c.Next()
}

func (h *SeatFeedHandler) HandleWebSocket(conn *websocket.Conn) {
	courseID, _ := conn.Locals("seat_course_id").(uuid.UUID)
	client := seatws.NewClient(h.hub, conn, courseID)

	err := h.hub.Subscribe(client, func() (models.SeatUsage, error) {
		return h.seats.SeatUsage(context.Background(), courseID)
	})
	if err != nil {
		logger.Log.Warn("seat snapshot failed, waiting for next update",
			zap.String("course_id", courseID.String()), zap.Error(err))
	}
	go client.WritePump()
	client.ReadPump()
}
