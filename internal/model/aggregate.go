package model

import (
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
)

// MealCount is the number of meals logged per type for a day.
type MealCount struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Snack     int `json:"snack"`
}

func (c MealCount) Total() int {
	return c.Breakfast + c.Lunch + c.Dinner + c.Snack
}

// DailyAggregate is the running total for one (user, day). It is derived
// from the meal ledger and adjusted incrementally on every meal mutation.
type DailyAggregate struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	Date           calendar.Date `json:"date"`
	TotalNutrition Nutrition     `json:"total_nutrition"`
	MealCount      MealCount     `json:"meal_count"`
	CalorieGoal    float64       `json:"calorie_goal"`
	WaterIntake    float64       `json:"water_intake"`
	WaterGoal      float64       `json:"water_goal"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// AggregateDelta is a signed adjustment applied to a DailyAggregate.
type AggregateDelta struct {
	Nutrition Nutrition
	MealCount MealCount
	Water     float64
}
