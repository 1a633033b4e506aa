package handler

import (
	"log/slog"
	"net/http"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
)

type LeaderboardHandler struct {
	scorer *tracker.Scorer
	logger *slog.Logger
}

func NewLeaderboardHandler(scorer *tracker.Scorer, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{scorer: scorer, logger: logger}
}

func (h *LeaderboardHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.scorer.DailyLeaderboard(r.Context(), day)
	if err != nil {
		writeServiceError(w, h.logger, "daily leaderboard", err)
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *LeaderboardHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	since, err := queryDate(r, "since")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.scorer.WeeklyLeaderboard(r.Context(), since)
	if err != nil {
		writeServiceError(w, h.logger, "weekly leaderboard", err)
		return
	}
	if standings == nil {
		standings = []model.WeeklyStanding{}
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rank, err := h.scorer.UserRank(r.Context(), auth.UserID(r.Context()), day)
	if err != nil {
		writeServiceError(w, h.logger, "user rank", err)
		return
	}
	writeJSON(w, http.StatusOK, rank)
}
