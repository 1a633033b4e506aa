// Package recipe defines the recipe suggestion capability. How suggestions
// are produced is up to the Suggester implementation.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

const (
	DefaultCount   = 3
	MaxCount       = 5
	maxIngredients = 30
)

var (
	ErrUnavailable = errors.New("recipe suggestions are not configured")
	ErrBadRequest  = errors.New("invalid recipe request")
)

type Request struct {
	Ingredients []string       `json:"ingredients"`
	MealType    model.MealType `json:"meal_type,omitempty"`
	MaxCalories float64        `json:"max_calories,omitempty"`
	Preferences []string       `json:"preferences,omitempty"`
	Count       int            `json:"count,omitempty"`
}

// Normalize trims the request and fills defaults. It returns ErrBadRequest
// when no usable ingredient remains.
func (r Request) Normalize() (Request, error) {
	var ings []string
	for _, s := range r.Ingredients {
		if s = strings.TrimSpace(s); s != "" {
			ings = append(ings, s)
		}
	}
	if len(ings) == 0 {
		return r, fmt.Errorf("%w: at least one ingredient is required", ErrBadRequest)
	}
	if len(ings) > maxIngredients {
		return r, fmt.Errorf("%w: too many ingredients", ErrBadRequest)
	}
	if r.MealType != "" && !r.MealType.Valid() {
		return r, fmt.Errorf("%w: unknown meal type", ErrBadRequest)
	}
	if r.MaxCalories < 0 {
		return r, fmt.Errorf("%w: max_calories must be >= 0", ErrBadRequest)
	}
	r.Ingredients = ings
	switch {
	case r.Count <= 0:
		r.Count = DefaultCount
	case r.Count > MaxCount:
		r.Count = MaxCount
	}
	return r, nil
}

type Recipe struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Ingredients  []model.Ingredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Nutrition    model.Nutrition    `json:"nutrition"`
	PrepMinutes  int                `json:"prep_minutes"`
}

// Suggester proposes recipes for a request.
type Suggester interface {
	Suggest(ctx context.Context, req Request) ([]Recipe, error)
}
