package nutrition

import "github.com/joan-ouma/nutrifit-sub000/internal/model"

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// MacroPercentages is each macro's share of macro-derived calories.
type MacroPercentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// RemainingCalories returns max(0, goal - consumed).
func RemainingCalories(agg model.DailyAggregate) float64 {
	r := agg.CalorieGoal - agg.TotalNutrition.Calories
	if r < 0 {
		return 0
	}
	return r
}

// Macros computes macro percentages for agg, rounded to one decimal.
// All zero when no macro calories were logged.
func Macros(agg model.DailyAggregate) MacroPercentages {
	n := agg.TotalNutrition
	p := n.Protein * kcalPerGramProtein
	c := n.Carbs * kcalPerGramCarbs
	f := n.Fats * kcalPerGramFat
	total := p + c + f
	if total <= 0 {
		return MacroPercentages{}
	}
	return MacroPercentages{
		Protein: round1(p / total * 100),
		Carbs:   round1(c / total * 100),
		Fats:    round1(f / total * 100),
	}
}

// WaterProgress returns intake as a fraction of goal, capped at 1.
func WaterProgress(agg model.DailyAggregate) float64 {
	if agg.WaterGoal <= 0 {
		return 0
	}
	p := agg.WaterIntake / agg.WaterGoal
	if p > 1 {
		return 1
	}
	return p
}
