// Package export renders meal history as CSV and stores exports in
// S3-compatible object storage.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

var mealHeader = []string{
	"date", "type", "name",
	"calories", "protein", "carbs", "fats", "fiber", "sugar", "sodium",
	"serving_size", "notes", "ingredients",
}

// WriteMealsCSV writes a header row followed by one row per meal.
func WriteMealsCSV(w io.Writer, meals []model.Meal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mealHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range meals {
		n := m.Nutrition
		row := []string{
			m.Date.String(),
			string(m.Type),
			sanitize(m.Name),
			num(n.Calories), num(n.Protein), num(n.Carbs), num(n.Fats),
			num(n.Fiber), num(n.Sugar), num(n.Sodium),
			sanitize(m.ServingSize),
			sanitize(m.Notes),
			sanitize(ingredientList(m.Ingredients)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write meal %d: %w", m.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ingredientList(in []model.Ingredient) string {
	parts := make([]string, 0, len(in))
	for _, ing := range in {
		if ing.Amount != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", ing.Name, ing.Amount))
			continue
		}
		parts = append(parts, ing.Name)
	}
	return strings.Join(parts, "; ")
}

// sanitize stops spreadsheet apps from evaluating user text as a formula.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
