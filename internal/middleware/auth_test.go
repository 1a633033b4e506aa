package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
)

func protected(t *testing.T, tokens TokenParser, reached *auth.AuthContext) http.Handler {
	t.Helper()
	return RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("expected AuthContext in request context")
		}
		if reached == nil {
			t.Fatal("should not reach handler")
		}
		*reached = ac
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAuthNoToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	protected(t, tokens, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()
	protected(t, tokens, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthWrongScheme(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	token, _, _ := tokens.Issue(1, "a@example.com", "a")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic "+token)
	rec := httptest.NewRecorder()
	protected(t, tokens, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	token, _, err := tokens.Issue(7, "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got auth.AuthContext
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(t, tokens, &got).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.UserID != 7 || got.Username != "alice" {
		t.Errorf("auth context = %+v", got)
	}
}

func TestRequireAuthQueryTokenOnlyForWebsocket(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	token, _, _ := tokens.Issue(7, "alice@example.com", "alice")

	req := httptest.NewRequest("GET", "/ws?access_token="+token, nil)
	rec := httptest.NewRecorder()
	protected(t, tokens, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("plain request: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var got auth.AuthContext
	req = httptest.NewRequest("GET", "/ws?access_token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	protected(t, tokens, &got).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("upgrade request: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.UserID != 7 {
		t.Errorf("UserID = %d, want 7", got.UserID)
	}
}
