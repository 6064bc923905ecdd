package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(gotUserID *string, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := UserIDFromContext(r.Context()); ok {
			*gotUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_NoCookie(t *testing.T) {
	s := newTestTokenService(t)
	var userID string
	var called bool

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	RequireAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if called {
		t.Error("handler ran without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body struct {
		Status       int    `json:"status"`
		Detail       string `json:"detail"`
		RequiresAuth bool   `json:"requires_auth"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding 401 body: %v", err)
	}
	if body.Status != 401 || !body.RequiresAuth {
		t.Errorf("401 body = %+v, want status 401 and requires_auth true", body)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	s := newTestTokenService(t)
	var userID string
	var called bool

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	RequireAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if called {
		t.Error("handler ran with an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	s := newTestTokenService(t)
	token, err := s.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var userID string
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	RequireAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler did not run with a valid session")
	}
	if userID != "user-42" {
		t.Errorf("userID in context = %q, want user-42", userID)
	}
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	s := newTestTokenService(t)
	var userID string
	var called bool

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	OptionalAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler did not run for an anonymous request")
	}
	if userID != "" {
		t.Errorf("userID = %q, want empty for anonymous", userID)
	}
}

func TestOptionalAuth_WithSession(t *testing.T) {
	s := newTestTokenService(t)
	token, err := s.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var userID string
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	OptionalAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler did not run")
	}
	if userID != "user-42" {
		t.Errorf("userID = %q, want user-42", userID)
	}
}

func TestOptionalAuth_BadTokenStillPasses(t *testing.T) {
	s := newTestTokenService(t)
	var userID string
	var called bool

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	OptionalAuth(s)(okHandler(&userID, &called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler did not run despite OptionalAuth")
	}
	if userID != "" {
		t.Errorf("userID = %q, want empty for a bad token", userID)
	}
}
