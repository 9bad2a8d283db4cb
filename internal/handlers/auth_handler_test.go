package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubAuthService struct {
	signupErr   error
	loginErr    error
	lastSignup  services.SignupInput
	lastEmail   string
	signupCalls int
}

func (s *stubAuthService) Signup(_ context.Context, input services.SignupInput) (*models.User, error) {
	s.signupCalls++
	s.lastSignup = input
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &models.User{ID: uuid.New(), Name: input.Name, Email: input.Email, Role: models.RoleUser}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *models.User, error) {
	s.lastEmail = email
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed-token", &models.User{ID: uuid.New(), Name: "Ada", Email: email, Role: models.RoleUser}, nil
}

func newAuthTestApp(service *stubAuthService) *fiber.App {
	handler := NewAuthHandler(service)
	app := fiber.New()
	app.Post("/api/users/signup", handler.Signup)
	app.Post("/api/users/login", handler.Login)
	return app
}

func TestSignupCreatesUser(t *testing.T) {
	service := &stubAuthService{}
	app := newAuthTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(`{
		"name": "Ada",
		"email": "ada@example.com",
		"password": "Secret123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var payload struct {
		User struct {
			ID   uuid.UUID `json:"id"`
			Name string    `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.User.Name != "Ada" || payload.User.ID == uuid.Nil {
		t.Fatalf("unexpected user %+v", payload.User)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	service := &stubAuthService{}
	app := newAuthTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(`{
		"name": "Ada",
		"email": "ada@example.com",
		"password": "alllowercase"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp.Body); !strings.HasPrefix(got, "password must be") {
		t.Fatalf("expected password message, got %q", got)
	}
	if service.signupCalls != 0 {
		t.Fatalf("expected service not to be called")
	}
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{signupErr: services.ErrEmailTaken})

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(`{
		"name": "Ada",
		"email": "ada@example.com",
		"password": "Secret123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	service := &stubAuthService{}
	app := newAuthTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{
		"email": "ada@example.com",
		"password": "Secret123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Token != "signed-token" {
		t.Fatalf("expected token, got %q", payload.Token)
	}
	if service.lastEmail != "ada@example.com" {
		t.Fatalf("expected email to be forwarded, got %q", service.lastEmail)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{loginErr: services.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{
		"email": "ada@example.com",
		"password": "Secret123"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
