package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestGenerateParseRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	initTestJWT(t)

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
	if _, err := ParseJWT(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	initTestJWT(t)

	claims := jwt.MapClaims{
		"user_id": int64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	initTestJWT(t)

	past := time.Now().Add(-time.Hour).Unix()
	claims := jwt.MapClaims{
		"user_id": int64(7),
		"exp":     past,
		"iat":     past,
		"nbf":     past,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseJWT(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}
