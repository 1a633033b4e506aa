package nutrition

import (
	"math"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

const (
	PointsPerMeal      = 10
	PointsCaloriesMet  = 50
	PointsPerStreakDay = 5
	CalorieTolerance   = 0.10
	PerfectDayMinMeals = 3
)

// CaloriesMet reports whether consumed is positive and within ±10% of goal.
func CaloriesMet(consumed, goal float64) bool {
	if consumed <= 0 || goal <= 0 {
		return false
	}
	return math.Abs(consumed-goal) <= goal*CalorieTolerance
}

// Score derives the leaderboard entry for a day. It is a pure function of
// its inputs, so recomputing with unchanged data yields the same entry.
func Score(agg model.DailyAggregate, user model.User) model.LeaderboardEntry {
	meals := agg.MealCount.Total()
	met := CaloriesMet(agg.TotalNutrition.Calories, user.CalorieGoal)

	score := meals * PointsPerMeal
	if met {
		score += PointsCaloriesMet
	}
	score += user.Streak * PointsPerStreakDay

	return model.LeaderboardEntry{
		UserID:      user.ID,
		Username:    user.Username,
		Date:        agg.Date,
		Score:       score,
		Streak:      user.Streak,
		MealsLogged: meals,
		Metrics: model.ScoreMetrics{
			CaloriesMet: met,
			PerfectDay:  met && meals >= PerfectDayMinMeals,
		},
		Nutrition: model.MacroSnapshot{
			Calories: agg.TotalNutrition.Calories,
			Protein:  agg.TotalNutrition.Protein,
			Carbs:    agg.TotalNutrition.Carbs,
			Fats:     agg.TotalNutrition.Fats,
		},
	}
}
