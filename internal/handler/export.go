package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/joan-ouma/nutrifit-sub000/internal/auth"
	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/export"
	"github.com/joan-ouma/nutrifit-sub000/internal/tracker"
)

type ExportHandler struct {
	ledger  *tracker.Ledger
	storage *export.Store
	logger  *slog.Logger
}

func NewExportHandler(ledger *tracker.Ledger, storage *export.Store, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{ledger: ledger, storage: storage, logger: logger}
}

func (h *ExportHandler) rangeParams(w http.ResponseWriter, r *http.Request) (calendar.Date, calendar.Date, bool) {
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return from, from, false
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return from, to, false
	}
	from, to, err = h.ledger.ResolveRange(from, to)
	if err != nil {
		writeServiceError(w, h.logger, "export range", err)
		return from, to, false
	}
	return from, to, true
}

func (h *ExportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	meals, err := h.ledger.ListMealsInRange(r.Context(), auth.UserID(r.Context()), from, to)
	if err != nil {
		writeServiceError(w, h.logger, "export meals", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="meals-%s-%s.csv"`, from, to))
	if err := export.WriteMealsCSV(w, meals); err != nil {
		h.logger.Error("write csv", "error", err)
	}
}

func (h *ExportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil || !h.storage.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "export storage is not configured")
		return
	}
	from, to, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	userID := auth.UserID(r.Context())
	meals, err := h.ledger.ListMealsInRange(r.Context(), userID, from, to)
	if err != nil {
		writeServiceError(w, h.logger, "export meals", err)
		return
	}

	obj, err := h.storage.UploadMeals(r.Context(), userID, from, to, meals)
	if err != nil {
		h.logger.Error("upload export", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "export upload failed")
		return
	}

	h.logger.Info("export uploaded", "user_id", userID, "key", obj.Key, "rows", obj.Rows)
	writeJSON(w, http.StatusCreated, obj)
}

func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil || !h.storage.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "export storage is not configured")
		return
	}

	name := r.PathValue("name")
	body, err := h.storage.Open(r.Context(), auth.UserID(r.Context()), name)
	if errors.Is(err, export.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "invalid export name")
		return
	}
	if err != nil {
		h.logger.Warn("open export", "name", name, "error", err)
		writeError(w, http.StatusNotFound, "export not found")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("stream export", "name", name, "error", err)
	}
}
