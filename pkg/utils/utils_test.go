package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	password := "Secret123"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestJWT(t *testing.T) {
	secret := "supersecret"
	userID := "5b1f0c3e-6a7d-4f4e-9b55-2d1f9d1e8a10"
	role := "USER"

	token, err := GenerateToken(userID, role, secret, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected UserID %s, got %s", userID, claims.UserID)
	}

	if claims.Role != role {
		t.Errorf("Expected Role %s, got %s", role, claims.Role)
	}

	_, err = ValidateToken(token, "wrongsecret")
	if err == nil {
		t.Errorf("Expected error with wrong secret")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("5b1f0c3e-6a7d-4f4e-9b55-2d1f9d1e8a10", "COACH", "supersecret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "supersecret"); err == nil {
		t.Fatalf("Expected expired token to be rejected")
	}
}

func TestJWTRejectsForeignSigningMethod(t *testing.T) {
	claims := Claims{
		UserID: "5b1f0c3e-6a7d-4f4e-9b55-2d1f9d1e8a10",
		Role:   "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(token, "supersecret"); err == nil {
		t.Fatalf("Expected unsigned token to be rejected")
	}
}

func TestJWTRequiresUserID(t *testing.T) {
	token, err := GenerateToken("", "USER", "supersecret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "supersecret"); err == nil {
		t.Fatalf("Expected token without user id to be rejected")
	}
}
