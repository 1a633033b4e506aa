package tracker

import (
	"context"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/nutrition"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

const (
	DefaultInsightDays = 7
	MaxInsightDays     = 90
)

// Rollup answers read-only questions over ranges of daily aggregates.
type Rollup struct {
	aggregates *store.AggregateStore
	users      *store.UserStore
	today      Clock
}

func NewRollup(aggregates *store.AggregateStore, users *store.UserStore, today Clock) *Rollup {
	return &Rollup{aggregates: aggregates, users: users, today: today}
}

// WeeklySummary covers [weekStart, weekStart+7). A zero weekStart means the
// Monday of the current week.
func (r *Rollup) WeeklySummary(ctx context.Context, userID int64, weekStart calendar.Date) (*nutrition.WeeklySummary, error) {
	if weekStart.IsZero() {
		weekStart = r.today().StartOfWeek()
	}
	rows, err := r.aggregates.ListRange(ctx, userID, weekStart, weekStart.AddDays(7))
	if err != nil {
		return nil, err
	}
	s := nutrition.Summarize(weekStart, rows)
	return &s, nil
}

// NutritionInsights looks at the windowDays ending today. windowDays is
// clamped to [1, 90]; zero or less means the default of 7.
func (r *Rollup) NutritionInsights(ctx context.Context, userID int64, windowDays int) (*nutrition.Insights, error) {
	if windowDays <= 0 {
		windowDays = DefaultInsightDays
	}
	if windowDays > MaxInsightDays {
		windowDays = MaxInsightDays
	}

	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	today := r.today()
	rows, err := r.aggregates.ListRange(ctx, userID, today.AddDays(-(windowDays - 1)), today.AddDays(1))
	if err != nil {
		return nil, err
	}
	ins := nutrition.Analyze(*u, windowDays, rows)
	return &ins, nil
}
