package model

import (
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
)

const (
	DefaultCalorieGoal = 2000
	DefaultWaterGoal   = 2000
)

type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"`
	CalorieGoal  float64        `json:"calorie_goal"`
	WaterGoal    float64        `json:"water_goal"`
	Streak       int            `json:"streak"`
	LastLogDate  *calendar.Date `json:"last_log_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
