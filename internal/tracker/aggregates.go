package tracker

import (
	"context"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/nutrition"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

// MaxWaterPerLog caps a single water entry, in ml.
const MaxWaterPerLog = 10000

// DailyView is a day's aggregate plus the numbers derived from it.
type DailyView struct {
	Aggregate         model.DailyAggregate       `json:"aggregate"`
	RemainingCalories float64                    `json:"remaining_calories"`
	Macros            nutrition.MacroPercentages `json:"macro_percentages"`
	WaterProgress     float64                    `json:"water_progress"`
}

type Aggregates struct {
	aggregates *store.AggregateStore
	users      *store.UserStore
	queue      RecomputeQueue
	today      Clock
}

func NewAggregates(aggregates *store.AggregateStore, users *store.UserStore, queue RecomputeQueue, today Clock) *Aggregates {
	return &Aggregates{
		aggregates: aggregates,
		users:      users,
		queue:      queue,
		today:      today,
	}
}

// UpsertAndAdjust applies delta to the user's row for day, creating it with
// the user's current goals if needed.
func (a *Aggregates) UpsertAndAdjust(ctx context.Context, userID int64, day calendar.Date, delta model.AggregateDelta) (*model.DailyAggregate, error) {
	if day.IsZero() {
		day = a.today()
	}
	agg, err := a.aggregates.Adjust(ctx, userID, day, delta)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, ErrNotFound
	}
	return agg, nil
}

// AddWater adds amountMl to the day's water intake.
func (a *Aggregates) AddWater(ctx context.Context, userID int64, day calendar.Date, amountMl float64) (*model.DailyAggregate, error) {
	if !(amountMl > 0) {
		return nil, invalid("amount", "amount must be greater than 0")
	}
	if amountMl > MaxWaterPerLog {
		return nil, invalid("amount", "amount must be at most %d ml", MaxWaterPerLog)
	}
	if day.IsZero() {
		day = a.today()
	}
	agg, err := a.UpsertAndAdjust(ctx, userID, day, model.AggregateDelta{Water: amountMl})
	if err != nil {
		return nil, err
	}
	a.queue.Enqueue(userID, day)
	return agg, nil
}

func (a *Aggregates) Get(ctx context.Context, userID int64, day calendar.Date) (*model.DailyAggregate, error) {
	if day.IsZero() {
		day = a.today()
	}
	agg, err := a.aggregates.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, ErrNotFound
	}
	return agg, nil
}

// Daily returns the view for day. Days with nothing logged yet come back as
// zero totals against the user's current goals.
func (a *Aggregates) Daily(ctx context.Context, userID int64, day calendar.Date) (*DailyView, error) {
	if day.IsZero() {
		day = a.today()
	}
	agg, err := a.aggregates.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		u, err := a.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrNotFound
		}
		agg = &model.DailyAggregate{
			UserID:      userID,
			Date:        day,
			CalorieGoal: u.CalorieGoal,
			WaterGoal:   u.WaterGoal,
		}
	}
	return &DailyView{
		Aggregate:         *agg,
		RemainingCalories: nutrition.RemainingCalories(*agg),
		Macros:            nutrition.Macros(*agg),
		WaterProgress:     nutrition.WaterProgress(*agg),
	}, nil
}
