package handler

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	maxPasswordLength = 72 // bcrypt ignores bytes past 72
)

type AuthHandler struct {
	userStore *store.UserStore
	tokens    *auth.TokenIssuer
	logger    *slog.Logger
}

func NewAuthHandler(us *store.UserStore, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userStore: us, tokens: tokens, logger: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

func normalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	return s, true
}

func validUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minUsernameLength && n <= maxUsernameLength
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if !validUsername(req.Username) {
		writeError(w, http.StatusBadRequest, "username must be 3 to 30 characters")
		return
	}
	if len(req.Password) < auth.MinPasswordLength || len(req.Password) > maxPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be 8 to 72 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.userStore.Create(r.Context(), email, req.Username, hash)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "email is already registered")
			return
		}
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	h.issue(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.issue(w, http.StatusOK, user)
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, user *model.User) {
	token, exp, err := h.tokens.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, ExpiresAt: exp, User: user})
}
