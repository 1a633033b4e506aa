package model

import (
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the valid meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Nutrition is the per-meal (or per-day) nutrient vector.
// Calories in kcal, sodium in mg, everything else in grams.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

type Ingredient struct {
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	Calories float64 `json:"calories"`
}

type Meal struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	Name        string        `json:"name"`
	Type        MealType      `json:"type"`
	Date        calendar.Date `json:"date"`
	Nutrition   Nutrition     `json:"nutrition"`
	Ingredients []Ingredient  `json:"ingredients"`
	ServingSize string        `json:"serving_size"`
	Notes       string        `json:"notes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
