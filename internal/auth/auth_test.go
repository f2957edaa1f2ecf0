package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" {
		t.Error("hash should not equal the plaintext")
	}
	if !VerifyPassword("password123", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, _ := NewManager("secret-one", time.Hour)
	verifier, _ := NewManager("secret-two", time.Hour)

	token, err := issuer.GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	m, _ := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := m.ParseToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)
	if _, err := m.ParseToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestNewManagerEmptySecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestMiddleware(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)

	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Middleware(next)

	token, _ := m.GenerateToken(7)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !gotOK || gotID != 7 {
		t.Errorf("expected user 7 in context, got %d (ok=%v)", gotID, gotOK)
	}
}

func TestMiddlewareRejects(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"empty token", "Bearer "},
		{"bad token", "Bearer nonsense"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}
