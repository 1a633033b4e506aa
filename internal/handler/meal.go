package handler

import (
	"log/slog"
	"net/http"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
	"github.com/joan-ouma/nutrifit-sub000/internal/websocket"
)

type MealHandler struct {
	ledger *tracker.Ledger
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMealHandler(ledger *tracker.Ledger, hub *websocket.Hub, logger *slog.Logger) *MealHandler {
	return &MealHandler{ledger: ledger, hub: hub, logger: logger}
}

func (h *MealHandler) notify(userID int64, action string, m *model.Meal) {
	if h.hub != nil {
		h.hub.SendToUser(userID, websocket.NewMessage("meal", action, m.ID, map[string]any{
			"date": m.Date.String(),
			"type": m.Type,
		}))
	}
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tracker.MealInput
	if !decodeJSON(w, r, &in) {
		return
	}

	userID := auth.UserID(r.Context())
	meal, err := h.ledger.LogMeal(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.logger, "log meal", err)
		return
	}

	h.notify(userID, "created", meal)
	writeJSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meals, err := h.ledger.ListMealsByDate(r.Context(), auth.UserID(r.Context()), day, tracker.Page{Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, h.logger, "list meals", err)
		return
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	meal, err := h.ledger.GetMeal(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeServiceError(w, h.logger, "get meal", err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var patch tracker.MealPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	userID := auth.UserID(r.Context())
	meal, err := h.ledger.UpdateMeal(r.Context(), userID, id, patch)
	if err != nil {
		writeServiceError(w, h.logger, "update meal", err)
		return
	}

	h.notify(userID, "updated", meal)
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	if err := h.ledger.DeleteMeal(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.logger, "delete meal", err)
		return
	}

	if h.hub != nil {
		h.hub.SendToUser(userID, websocket.NewMessage("meal", "deleted", id, nil))
	}
	w.WriteHeader(http.StatusNoContent)
}
