package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return s
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	if err == nil {
		t.Fatal("NewTokenService() accepted a short secret")
	}
}

func TestGenerateAndValidate(t *testing.T) {
	s := newTestTokenService(t)

	token, err := s.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	subject, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != "user-123" {
		t.Errorf("subject = %q, want user-123", subject)
	}
}

func TestValidate_Expired(t *testing.T) {
	s := newTestTokenService(t)

	token, err := s.GenerateWithDuration("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	_, err = s.Validate(token)
	if err == nil {
		t.Fatal("Validate() accepted an expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %v, want an expiry error", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	s := newTestTokenService(t)
	other, err := NewTokenService("another-secret-0123456789abcdef")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := other.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := s.Validate(token); err == nil {
		t.Fatal("Validate() accepted a token signed with a different secret")
	}
}

func TestValidate_Garbage(t *testing.T) {
	s := newTestTokenService(t)

	if _, err := s.Validate("not.a.jwt"); err == nil {
		t.Fatal("Validate() accepted garbage")
	}
	if _, err := s.Validate(""); err == nil {
		t.Fatal("Validate() accepted an empty string")
	}
}

func TestValidate_Tampered(t *testing.T) {
	s := newTestTokenService(t)

	token, err := s.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := s.Validate(tampered); err == nil {
		t.Fatal("Validate() accepted a tampered token")
	}
}
