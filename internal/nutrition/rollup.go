package nutrition

import (
	"sort"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

// WeeklySummary summarizes seven consecutive days of aggregates.
type WeeklySummary struct {
	WeekStart  calendar.Date          `json:"week_start"`
	WeekEnd    calendar.Date          `json:"week_end"`
	Totals     model.Nutrition        `json:"totals"`
	Averages   model.Nutrition        `json:"averages"`
	WaterTotal float64                `json:"water_total"`
	DaysLogged int                    `json:"days_logged"`
	Days       []model.DailyAggregate `json:"days"`
}

// Summarize totals rows and averages over the days that had at least one
// meal. Rows outside [start, start+7) are ignored.
func Summarize(start calendar.Date, rows []model.DailyAggregate) WeeklySummary {
	end := start.AddDays(7)
	s := WeeklySummary{
		WeekStart: start,
		WeekEnd:   end.AddDays(-1),
		Days:      []model.DailyAggregate{},
	}
	for _, r := range rows {
		if r.Date.Before(start) || !r.Date.Before(end) {
			continue
		}
		s.Days = append(s.Days, r)
		s.Totals = Add(s.Totals, r.TotalNutrition)
		s.WaterTotal += r.WaterIntake
		if r.MealCount.Total() > 0 {
			s.DaysLogged++
		}
	}
	sort.SliceStable(s.Days, func(i, j int) bool {
		return s.Days[i].Date.Before(s.Days[j].Date)
	})
	s.Averages = average(s.Totals, s.DaysLogged)
	return s
}

func average(total model.Nutrition, days int) model.Nutrition {
	if days < 1 {
		days = 1
	}
	avg := Scale(total, 1/float64(days))
	return model.Nutrition{
		Calories: round1(avg.Calories),
		Protein:  round1(avg.Protein),
		Carbs:    round1(avg.Carbs),
		Fats:     round1(avg.Fats),
		Fiber:    round1(avg.Fiber),
		Sugar:    round1(avg.Sugar),
		Sodium:   round1(avg.Sodium),
	}
}
