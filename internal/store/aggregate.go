package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

type AggregateStore struct {
	db DBTX
}

func NewAggregateStore(db DBTX) *AggregateStore {
	return &AggregateStore{db: db}
}

func (s *AggregateStore) WithTx(tx *sql.Tx) *AggregateStore {
	return &AggregateStore{db: tx}
}

func scanAggregate(sc scanner) (*model.DailyAggregate, error) {
	var a model.DailyAggregate
	n := &a.TotalNutrition
	c := &a.MealCount
	err := sc.Scan(
		&a.ID, &a.UserID, &a.Date,
		&n.Calories, &n.Protein, &n.Carbs, &n.Fats, &n.Fiber, &n.Sugar, &n.Sodium,
		&c.Breakfast, &c.Lunch, &c.Dinner, &c.Snack,
		&a.CalorieGoal, &a.WaterIntake, &a.WaterGoal,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const aggregateCols = `id, user_id, date, calories, protein, carbs, fats, fiber, sugar, sodium, breakfast_count, lunch_count, dinner_count, snack_count, calorie_goal, water_intake, water_goal, created_at, updated_at`

// The first write of a day seeds the goals from the users row. Later writes
// add the delta server-side so concurrent adjustments never lose updates.
// Totals and counts are floored at zero.
const upsertAggregate = `
INSERT INTO daily_aggregates (
	user_id, date,
	calories, protein, carbs, fats, fiber, sugar, sodium,
	breakfast_count, lunch_count, dinner_count, snack_count,
	water_intake, calorie_goal, water_goal
)
SELECT ?1, ?2,
	MAX(0, ?3), MAX(0, ?4), MAX(0, ?5), MAX(0, ?6), MAX(0, ?7), MAX(0, ?8), MAX(0, ?9),
	MAX(0, ?10), MAX(0, ?11), MAX(0, ?12), MAX(0, ?13),
	MAX(0, ?14), u.calorie_goal, u.water_goal
FROM users u WHERE u.id = ?1
ON CONFLICT(user_id, date) DO UPDATE SET
	calories = MAX(0, calories + ?3),
	protein = MAX(0, protein + ?4),
	carbs = MAX(0, carbs + ?5),
	fats = MAX(0, fats + ?6),
	fiber = MAX(0, fiber + ?7),
	sugar = MAX(0, sugar + ?8),
	sodium = MAX(0, sodium + ?9),
	breakfast_count = MAX(0, breakfast_count + ?10),
	lunch_count = MAX(0, lunch_count + ?11),
	dinner_count = MAX(0, dinner_count + ?12),
	snack_count = MAX(0, snack_count + ?13),
	water_intake = MAX(0, water_intake + ?14),
	updated_at = CURRENT_TIMESTAMP`

// Adjust applies delta to the (userID, day) row, creating it when absent.
// It returns (nil, nil) when the user does not exist.
func (s *AggregateStore) Adjust(ctx context.Context, userID int64, day calendar.Date, delta model.AggregateDelta) (*model.DailyAggregate, error) {
	n := delta.Nutrition
	c := delta.MealCount
	_, err := s.db.ExecContext(ctx, upsertAggregate,
		userID, day,
		n.Calories, n.Protein, n.Carbs, n.Fats, n.Fiber, n.Sugar, n.Sodium,
		c.Breakfast, c.Lunch, c.Dinner, c.Snack,
		delta.Water,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert aggregate: %w", err)
	}
	return s.Get(ctx, userID, day)
}

func (s *AggregateStore) Get(ctx context.Context, userID int64, day calendar.Date) (*model.DailyAggregate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+aggregateCols+` FROM daily_aggregates WHERE user_id = ? AND date = ?`,
		userID, day,
	)
	a, err := scanAggregate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get aggregate: %w", err)
	}
	return a, nil
}

// ListRange returns a user's rows with from <= date < until, by date.
func (s *AggregateStore) ListRange(ctx context.Context, userID int64, from, until calendar.Date) ([]model.DailyAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+aggregateCols+` FROM daily_aggregates
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC`,
		userID, from, until,
	)
	if err != nil {
		return nil, fmt.Errorf("list aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []model.DailyAggregate
	for rows.Next() {
		a, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		aggs = append(aggs, *a)
	}
	return aggs, rows.Err()
}
