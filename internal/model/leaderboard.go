package model

import (
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
)

type ScoreMetrics struct {
	CaloriesMet bool `json:"calories_met"`
	PerfectDay  bool `json:"perfect_day"`
}

type MacroSnapshot struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// LeaderboardEntry is a derived score snapshot for one (user, day).
type LeaderboardEntry struct {
	UserID      int64         `json:"user_id"`
	Username    string        `json:"username"`
	Date        calendar.Date `json:"date"`
	Score       int           `json:"score"`
	Streak      int           `json:"streak"`
	MealsLogged int           `json:"meals_logged"`
	Metrics     ScoreMetrics  `json:"metrics"`
	Nutrition   MacroSnapshot `json:"nutrition"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// WeeklyStanding is one user's summed leaderboard result over a week.
type WeeklyStanding struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	TotalScore  int    `json:"total_score"`
	MealsLogged int    `json:"meals_logged"`
	DaysActive  int    `json:"days_active"`
}

type UserRank struct {
	Date   calendar.Date `json:"date"`
	Rank   int           `json:"rank"`
	Score  int           `json:"score"`
	Ranked bool          `json:"ranked"`
}
