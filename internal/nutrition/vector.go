// Package nutrition holds the arithmetic behind daily aggregates, scores and
// rollups. Nothing here touches storage.
package nutrition

import (
	"fmt"
	"math"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

// Add returns a + b field by field.
func Add(a, b model.Nutrition) model.Nutrition {
	return model.Nutrition{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fats:     a.Fats + b.Fats,
		Fiber:    a.Fiber + b.Fiber,
		Sugar:    a.Sugar + b.Sugar,
		Sodium:   a.Sodium + b.Sodium,
	}
}

// Sub returns a - b field by field.
func Sub(a, b model.Nutrition) model.Nutrition {
	return Add(a, Scale(b, -1))
}

// Scale multiplies every field by k.
func Scale(n model.Nutrition, k float64) model.Nutrition {
	return model.Nutrition{
		Calories: n.Calories * k,
		Protein:  n.Protein * k,
		Carbs:    n.Carbs * k,
		Fats:     n.Fats * k,
		Fiber:    n.Fiber * k,
		Sugar:    n.Sugar * k,
		Sodium:   n.Sodium * k,
	}
}

// IsZero reports whether every field is zero.
func IsZero(n model.Nutrition) bool {
	return n == model.Nutrition{}
}

// Validate rejects negative or non-finite values. It returns the name of the
// first offending field.
func Validate(n model.Nutrition) (string, error) {
	fields := []struct {
		name string
		v    float64
	}{
		{"calories", n.Calories},
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fats", n.Fats},
		{"fiber", n.Fiber},
		{"sugar", n.Sugar},
		{"sodium", n.Sodium},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, fmt.Errorf("%s must be a finite number", f.name)
		}
		if f.v < 0 {
			return f.name, fmt.Errorf("%s must be >= 0", f.name)
		}
	}
	return "", nil
}

// CountFor returns a MealCount with n in the slot for t.
func CountFor(t model.MealType, n int) model.MealCount {
	var c model.MealCount
	switch t {
	case model.MealBreakfast:
		c.Breakfast = n
	case model.MealLunch:
		c.Lunch = n
	case model.MealDinner:
		c.Dinner = n
	case model.MealSnack:
		c.Snack = n
	}
	return c
}

// AddCounts returns a + b per meal type.
func AddCounts(a, b model.MealCount) model.MealCount {
	return model.MealCount{
		Breakfast: a.Breakfast + b.Breakfast,
		Lunch:     a.Lunch + b.Lunch,
		Dinner:    a.Dinner + b.Dinner,
		Snack:     a.Snack + b.Snack,
	}
}

// MealAdded is the aggregate delta for logging m.
func MealAdded(m model.Meal) model.AggregateDelta {
	return model.AggregateDelta{
		Nutrition: m.Nutrition,
		MealCount: CountFor(m.Type, 1),
	}
}

// MealRemoved is the aggregate delta for deleting m.
func MealRemoved(m model.Meal) model.AggregateDelta {
	return model.AggregateDelta{
		Nutrition: Scale(m.Nutrition, -1),
		MealCount: CountFor(m.Type, -1),
	}
}

// MealChanged is the delta for editing old into updated on the same day.
func MealChanged(old, updated model.Meal) model.AggregateDelta {
	d := model.AggregateDelta{Nutrition: Sub(updated.Nutrition, old.Nutrition)}
	if old.Type != updated.Type {
		d.MealCount = AddCounts(CountFor(old.Type, -1), CountFor(updated.Type, 1))
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
