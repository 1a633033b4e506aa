package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

type MealStore struct {
	db DBTX
}

func NewMealStore(db DBTX) *MealStore {
	return &MealStore{db: db}
}

func (s *MealStore) WithTx(tx *sql.Tx) *MealStore {
	return &MealStore{db: tx}
}

func scanMeal(sc scanner) (*model.Meal, error) {
	var m model.Meal
	var ingredients string
	n := &m.Nutrition
	err := sc.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Type, &m.Date,
		&n.Calories, &n.Protein, &n.Carbs, &n.Fats, &n.Fiber, &n.Sugar, &n.Sodium,
		&ingredients, &m.ServingSize, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ingredients), &m.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if m.Ingredients == nil {
		m.Ingredients = []model.Ingredient{}
	}
	return &m, nil
}

const mealCols = `id, user_id, name, type, date, calories, protein, carbs, fats, fiber, sugar, sodium, ingredients, serving_size, notes, created_at, updated_at`

func encodeIngredients(in []model.Ingredient) (string, error) {
	if in == nil {
		in = []model.Ingredient{}
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode ingredients: %w", err)
	}
	return string(b), nil
}

// Create inserts m and returns the stored row. ID and timestamps on m are
// ignored.
func (s *MealStore) Create(ctx context.Context, m model.Meal) (*model.Meal, error) {
	ingredients, err := encodeIngredients(m.Ingredients)
	if err != nil {
		return nil, err
	}
	n := m.Nutrition
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO meals (user_id, name, type, date, calories, protein, carbs, fats, fiber, sugar, sodium, ingredients, serving_size, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Name, m.Type, m.Date,
		n.Calories, n.Protein, n.Carbs, n.Fats, n.Fiber, n.Sugar, n.Sodium,
		ingredients, m.ServingSize, m.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *MealStore) GetByID(ctx context.Context, id int64) (*model.Meal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealCols+` FROM meals WHERE id = ?`, id)
	m, err := scanMeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

// GetForUser returns the meal only if it belongs to userID.
func (s *MealStore) GetForUser(ctx context.Context, userID, id int64) (*model.Meal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealCols+` FROM meals WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanMeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

// ListByDate returns a user's meals for one day, newest first.
func (s *MealStore) ListByDate(ctx context.Context, userID int64, day calendar.Date, limit, offset int) ([]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mealCols+` FROM meals
		WHERE user_id = ? AND date = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		userID, day, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return collectMeals(rows)
}

// ListInRange returns a user's meals with from <= date <= to, oldest first.
func (s *MealStore) ListInRange(ctx context.Context, userID int64, from, to calendar.Date) ([]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mealCols+` FROM meals
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list meals in range: %w", err)
	}
	return collectMeals(rows)
}

func collectMeals(rows *sql.Rows) ([]model.Meal, error) {
	defer rows.Close()
	var meals []model.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, *m)
	}
	return meals, rows.Err()
}

// Update overwrites every editable column of m.
func (s *MealStore) Update(ctx context.Context, m model.Meal) (*model.Meal, error) {
	ingredients, err := encodeIngredients(m.Ingredients)
	if err != nil {
		return nil, err
	}
	n := m.Nutrition
	_, err = s.db.ExecContext(ctx,
		`UPDATE meals SET name = ?, type = ?, date = ?,
			calories = ?, protein = ?, carbs = ?, fats = ?, fiber = ?, sugar = ?, sodium = ?,
			ingredients = ?, serving_size = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		m.Name, m.Type, m.Date,
		n.Calories, n.Protein, n.Carbs, n.Fats, n.Fiber, n.Sugar, n.Sodium,
		ingredients, m.ServingSize, m.Notes,
		m.ID, m.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	return s.GetByID(ctx, m.ID)
}

// Delete removes the meal and reports whether a row was deleted.
func (s *MealStore) Delete(ctx context.Context, userID, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete meal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
