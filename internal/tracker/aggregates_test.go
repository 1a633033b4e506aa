package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/nutrition"
)

func TestAddWater(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")
	ctx := context.Background()

	if _, err := env.aggs.AddWater(ctx, u.ID, calendar.Date{}, 250); err != nil {
		t.Fatalf("add water: %v", err)
	}
	agg, err := env.aggs.AddWater(ctx, u.ID, env.today, 500)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if agg.WaterIntake != 750 {
		t.Errorf("water = %v, want 750", agg.WaterIntake)
	}
	if agg.MealCount.Total() != 0 {
		t.Errorf("meal count = %+v, want zero", agg.MealCount)
	}
	if !env.queue.has(u.ID, testToday) {
		t.Error("expected a recompute to be queued")
	}
}

func TestAddWaterValidation(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")

	for _, amount := range []float64{0, -100, MaxWaterPerLog + 1} {
		_, err := env.aggs.AddWater(context.Background(), u.ID, env.today, amount)
		if !IsValidation(err) {
			t.Errorf("AddWater(%v) err = %v, want ValidationError", amount, err)
		}
	}
	if _, err := env.aggs.AddWater(context.Background(), u.ID, env.today, MaxWaterPerLog); err != nil {
		t.Errorf("AddWater(max) err = %v, want nil", err)
	}
}

func TestAddWaterUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.aggs.AddWater(context.Background(), 77, env.today, 100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDailyWithoutRow(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")
	if _, err := env.users.UpdateProfile(context.Background(), u.ID, "alice", 1800, 2500); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	view, err := env.aggs.Daily(context.Background(), u.ID, calendar.Date{})
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if view.Aggregate.Date != env.today {
		t.Errorf("date = %s, want %s", view.Aggregate.Date, env.today)
	}
	if view.Aggregate.CalorieGoal != 1800 || view.Aggregate.WaterGoal != 2500 {
		t.Errorf("goals = %v/%v, want 1800/2500", view.Aggregate.CalorieGoal, view.Aggregate.WaterGoal)
	}
	if view.RemainingCalories != 1800 {
		t.Errorf("remaining = %v, want 1800", view.RemainingCalories)
	}
	if view.Macros != (nutrition.MacroPercentages{}) {
		t.Errorf("macros = %+v, want zero", view.Macros)
	}
}

func TestDailyWithMeals(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")
	_, err := env.ledger.LogMeal(context.Background(), u.ID, MealInput{
		Name:      "Bowl",
		Type:      model.MealLunch,
		Nutrition: model.Nutrition{Calories: 800, Protein: 100, Carbs: 100},
	})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}

	view, err := env.aggs.Daily(context.Background(), u.ID, env.today)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if view.RemainingCalories != 1200 {
		t.Errorf("remaining = %v, want 1200", view.RemainingCalories)
	}
	if view.Macros.Protein != 50 || view.Macros.Carbs != 50 || view.Macros.Fats != 0 {
		t.Errorf("macros = %+v, want 50/50/0", view.Macros)
	}
}

func TestDailyUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.aggs.Daily(context.Background(), 5, env.today); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
