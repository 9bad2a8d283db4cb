package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })
	return logs
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	logs := observeLogs(t)

	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		if RequestID(c) == "" {
			t.Errorf("expected request id in locals")
		}
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("expected X-Request-ID response header")
	}
	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != "/ping" {
		t.Fatalf("expected path field, got %v", entries[0].ContextMap()["path"])
	}
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	observeLogs(t)

	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "req-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestRequestLoggerLevelsByStatus(t *testing.T) {
	logs := observeLogs(t)

	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	for _, path := range []string{"/missing", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
	}

	if logs.FilterMessage("client error").Len() != 1 {
		t.Fatalf("expected one client error entry")
	}
	if logs.FilterMessage("server error").Len() != 1 {
		t.Fatalf("expected one server error entry")
	}
}
