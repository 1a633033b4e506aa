package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps tracker errors onto status codes. Anything
// unrecognized is logged and reported as a 500 with a generic message.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var ve *tracker.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, tracker.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, tracker.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

// queryDate parses an optional YYYY-MM-DD query parameter. Absent means the
// zero Date, which the tracker treats as today.
func queryDate(r *http.Request, name string) (calendar.Date, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return calendar.Date{}, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return d, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}
