package nutrition

import (
	"fmt"
	"sort"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Thresholds for the recommendation rules.
const (
	calorieLowRatio     = 0.90
	calorieVeryLowRatio = 0.70
	calorieHighRatio    = 1.10
	proteinShareOfGoal  = 0.20
	proteinLowRatio     = 0.80
	fiberMinGrams       = 25
	sugarMaxGrams       = 50
	sodiumMaxMilligrams = 2300
	waterLowRatio       = 0.80
)

type Recommendation struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
}

type Insights struct {
	WindowDays      int              `json:"window_days"`
	DaysLogged      int              `json:"days_logged"`
	Averages        model.Nutrition  `json:"averages"`
	AverageWater    float64          `json:"average_water"`
	CalorieGoal     float64          `json:"calorie_goal"`
	ProteinTarget   float64          `json:"protein_target"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ProteinTarget derives a daily protein target in grams from a calorie goal.
func ProteinTarget(calorieGoal float64) float64 {
	return round1(calorieGoal * proteinShareOfGoal / kcalPerGramProtein)
}

// Analyze averages rows over the days with meals logged and applies the
// recommendation rules against the user's goals.
func Analyze(user model.User, windowDays int, rows []model.DailyAggregate) Insights {
	var total model.Nutrition
	var water float64
	logged := 0
	for _, r := range rows {
		if r.MealCount.Total() == 0 {
			continue
		}
		total = Add(total, r.TotalNutrition)
		water += r.WaterIntake
		logged++
	}
	ins := Insights{
		WindowDays:    windowDays,
		DaysLogged:    logged,
		Averages:      average(total, logged),
		CalorieGoal:   user.CalorieGoal,
		ProteinTarget: ProteinTarget(user.CalorieGoal),
	}
	if logged > 0 {
		ins.AverageWater = round1(water / float64(logged))
	}
	ins.Recommendations = recommend(ins, user)
	return ins
}

func recommend(ins Insights, user model.User) []Recommendation {
	if ins.DaysLogged == 0 {
		return []Recommendation{{
			Type:     "start_logging",
			Priority: PriorityLow,
			Message:  "Log a few meals to unlock personalized insights.",
		}}
	}

	var recs []Recommendation
	avg := ins.Averages
	goal := user.CalorieGoal

	if goal > 0 {
		switch {
		case avg.Calories < goal*calorieLowRatio:
			p := PriorityMedium
			if avg.Calories < goal*calorieVeryLowRatio {
				p = PriorityHigh
			}
			recs = append(recs, Recommendation{
				Type:     "below_goal",
				Priority: p,
				Message:  fmt.Sprintf("You averaged %.0f kcal, below your %.0f kcal goal.", avg.Calories, goal),
			})
		case avg.Calories > goal*calorieHighRatio:
			recs = append(recs, Recommendation{
				Type:     "above_goal",
				Priority: PriorityHigh,
				Message:  fmt.Sprintf("You averaged %.0f kcal, above your %.0f kcal goal.", avg.Calories, goal),
			})
		}

		if ins.ProteinTarget > 0 && avg.Protein < ins.ProteinTarget*proteinLowRatio {
			recs = append(recs, Recommendation{
				Type:     "low_protein",
				Priority: PriorityMedium,
				Message:  fmt.Sprintf("Protein averaged %.0f g against a %.0f g target.", avg.Protein, ins.ProteinTarget),
			})
		}
	}

	if avg.Sodium > sodiumMaxMilligrams {
		recs = append(recs, Recommendation{
			Type:     "high_sodium",
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("Sodium averaged %.0f mg, above the %d mg guideline.", avg.Sodium, sodiumMaxMilligrams),
		})
	}
	if avg.Sugar > sugarMaxGrams {
		recs = append(recs, Recommendation{
			Type:     "high_sugar",
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("Sugar averaged %.0f g, above %d g.", avg.Sugar, sugarMaxGrams),
		})
	}
	if avg.Fiber < fiberMinGrams {
		recs = append(recs, Recommendation{
			Type:     "low_fiber",
			Priority: PriorityLow,
			Message:  fmt.Sprintf("Fiber averaged %.0f g; aim for at least %d g.", avg.Fiber, fiberMinGrams),
		})
	}
	if user.WaterGoal > 0 && ins.AverageWater < user.WaterGoal*waterLowRatio {
		recs = append(recs, Recommendation{
			Type:     "hydration",
			Priority: PriorityLow,
			Message:  fmt.Sprintf("Water averaged %.0f ml against a %.0f ml goal.", ins.AverageWater, user.WaterGoal),
		})
	}

	if len(recs) == 0 {
		return []Recommendation{{
			Type:     "on_track",
			Priority: PriorityLow,
			Message:  "You're on track with your goals. Keep it up!",
		}}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})
	return recs
}
