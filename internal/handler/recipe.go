package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/recipe"
)

const suggestTimeout = 60 * time.Second

type RecipeHandler struct {
	suggester recipe.Suggester
	logger    *slog.Logger
}

// NewRecipeHandler accepts a nil suggester; requests then get 503.
func NewRecipeHandler(s recipe.Suggester, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{suggester: s, logger: logger}
}

func (h *RecipeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		writeError(w, http.StatusServiceUnavailable, recipe.ErrUnavailable.Error())
		return
	}

	var req recipe.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), suggestTimeout)
	defer cancel()

	recipes, err := h.suggester.Suggest(ctx, req)
	switch {
	case errors.Is(err, recipe.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, recipe.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		h.logger.Error("suggest recipes", "error", err)
		writeError(w, http.StatusBadGateway, "recipe suggestion failed")
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}
