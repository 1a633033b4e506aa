package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

const (
	maxCalorieGoal = 10000
	maxWaterGoal   = 10000
)

type ProfileHandler struct {
	userStore *store.UserStore
	logger    *slog.Logger
}

func NewProfileHandler(us *store.UserStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{userStore: us, logger: logger}
}

type profileRequest struct {
	Username    *string  `json:"username"`
	CalorieGoal *float64 `json:"calorie_goal"`
	WaterGoal   *float64 `json:"water_goal"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userStore.GetByID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update changes goals for future days. Aggregates already created keep the
// goals they were seeded with.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := h.userStore.GetByID(ctx, auth.UserID(ctx))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	username, calGoal, waterGoal := user.Username, user.CalorieGoal, user.WaterGoal
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
		if !validUsername(username) {
			writeError(w, http.StatusBadRequest, "username must be 3 to 30 characters")
			return
		}
	}
	if req.CalorieGoal != nil {
		calGoal = *req.CalorieGoal
		if calGoal <= 0 || calGoal > maxCalorieGoal {
			writeError(w, http.StatusBadRequest, "calorie_goal must be between 1 and 10000")
			return
		}
	}
	if req.WaterGoal != nil {
		waterGoal = *req.WaterGoal
		if waterGoal <= 0 || waterGoal > maxWaterGoal {
			writeError(w, http.StatusBadRequest, "water_goal must be between 1 and 10000")
			return
		}
	}

	updated, err := h.userStore.UpdateProfile(ctx, user.ID, username, calGoal, waterGoal)
	if err != nil {
		h.logger.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
