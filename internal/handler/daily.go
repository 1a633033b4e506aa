package handler

import (
	"log/slog"
	"net/http"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
	"github.com/joan-ouma/nutrifit-sub000/internal/websocket"
)

type DailyHandler struct {
	aggregates *tracker.Aggregates
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewDailyHandler(aggregates *tracker.Aggregates, hub *websocket.Hub, logger *slog.Logger) *DailyHandler {
	return &DailyHandler{aggregates: aggregates, hub: hub, logger: logger}
}

func (h *DailyHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.aggregates.Daily(r.Context(), auth.UserID(r.Context()), day)
	if err != nil {
		writeServiceError(w, h.logger, "daily view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type waterRequest struct {
	Amount float64       `json:"amount"`
	Date   calendar.Date `json:"date"`
}

func (h *DailyHandler) AddWater(w http.ResponseWriter, r *http.Request) {
	var req waterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := auth.UserID(r.Context())
	agg, err := h.aggregates.AddWater(r.Context(), userID, req.Date, req.Amount)
	if err != nil {
		writeServiceError(w, h.logger, "add water", err)
		return
	}

	if h.hub != nil {
		h.hub.SendToUser(userID, websocket.NewMessage("water", "logged", agg.ID, map[string]any{
			"date":         agg.Date.String(),
			"water_intake": agg.WaterIntake,
		}))
	}
	writeJSON(w, http.StatusOK, agg)
}
