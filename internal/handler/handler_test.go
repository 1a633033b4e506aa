package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/database"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
	"github.com/joan-ouma/nutrifit-sub000/internal/websocket"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	db      *sql.DB
	tracker *tracker.Tracker
	users   *store.UserStore
	hub     *websocket.Hub
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &testEnv{
		db:      db,
		tracker: tracker.New(db, tracker.Config{}, discardLogger()),
		users:   store.NewUserStore(db),
		hub:     websocket.NewHub(discardLogger()),
	}
}

func (e *testEnv) createUser(t *testing.T, email, username string) *model.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), email, username, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// authed returns a request carrying u's auth context.
func authed(method, target, body string, u *model.User) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	ctx := auth.WithAuth(req.Context(), auth.AuthContext{UserID: u.ID, Email: u.Email, Username: u.Username})
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &tracker.ValidationError{Field: "name", Message: "name is required"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("log meal: %w", &tracker.ValidationError{Field: "type"}), http.StatusBadRequest},
		{"not found", tracker.ErrNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("create: %w", tracker.ErrConflict), http.StatusConflict},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, discardLogger(), "op", tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "disk") {
				t.Errorf("internal error leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestQueryDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/x?date=2024-03-04&bad=03/04/2024", nil)

	d, err := queryDate(req, "date")
	if err != nil || d.String() != "2024-03-04" {
		t.Errorf("queryDate(date) = %v, %v", d, err)
	}
	if d, err := queryDate(req, "missing"); err != nil || !d.IsZero() {
		t.Errorf("queryDate(missing) = %v, %v; want zero, nil", d, err)
	}
	if _, err := queryDate(req, "bad"); err == nil {
		t.Error("queryDate(bad) expected error")
	}
}
