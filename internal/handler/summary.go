package handler

import (
	"log/slog"
	"net/http"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
)

type SummaryHandler struct {
	rollup *tracker.Rollup
	logger *slog.Logger
}

func NewSummaryHandler(rollup *tracker.Rollup, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{rollup: rollup, logger: logger}
}

func (h *SummaryHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.rollup.WeeklySummary(r.Context(), auth.UserID(r.Context()), start)
	if err != nil {
		writeServiceError(w, h.logger, "weekly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *SummaryHandler) Insights(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := h.rollup.NutritionInsights(r.Context(), auth.UserID(r.Context()), days)
	if err != nil {
		writeServiceError(w, h.logger, "nutrition insights", err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
