package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

type LeaderboardStore struct {
	db DBTX
}

func NewLeaderboardStore(db DBTX) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

func scanEntry(sc scanner) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	var caloriesMet, perfectDay int
	err := sc.Scan(
		&e.UserID, &e.Date, &e.Username, &e.Score, &e.Streak, &e.MealsLogged,
		&caloriesMet, &perfectDay,
		&e.Nutrition.Calories, &e.Nutrition.Protein, &e.Nutrition.Carbs, &e.Nutrition.Fats,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Metrics.CaloriesMet = caloriesMet != 0
	e.Metrics.PerfectDay = perfectDay != 0
	return &e, nil
}

const entryCols = `user_id, date, username, score, streak, meals_logged, calories_met, perfect_day, calories, protein, carbs, fats, updated_at`

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Upsert writes e, replacing every column of an existing row for the same
// (user, date).
func (s *LeaderboardStore) Upsert(ctx context.Context, e model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_entries (user_id, date, username, score, streak, meals_logged, calories_met, perfect_day, calories, protein, carbs, fats)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			username = excluded.username,
			score = excluded.score,
			streak = excluded.streak,
			meals_logged = excluded.meals_logged,
			calories_met = excluded.calories_met,
			perfect_day = excluded.perfect_day,
			calories = excluded.calories,
			protein = excluded.protein,
			carbs = excluded.carbs,
			fats = excluded.fats,
			updated_at = CURRENT_TIMESTAMP`,
		e.UserID, e.Date, e.Username, e.Score, e.Streak, e.MealsLogged,
		boolInt(e.Metrics.CaloriesMet), boolInt(e.Metrics.PerfectDay),
		e.Nutrition.Calories, e.Nutrition.Protein, e.Nutrition.Carbs, e.Nutrition.Fats,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return s.Get(ctx, e.UserID, e.Date)
}

func (s *LeaderboardStore) Get(ctx context.Context, userID int64, day calendar.Date) (*model.LeaderboardEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryCols+` FROM leaderboard_entries WHERE user_id = ? AND date = ?`,
		userID, day,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard entry: %w", err)
	}
	return e, nil
}

// ListByDate returns the top entries for day, highest score first. Ties go
// to the lower user ID.
func (s *LeaderboardStore) ListByDate(ctx context.Context, day calendar.Date, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryCols+` FROM leaderboard_entries
		WHERE date = ?
		ORDER BY score DESC, user_id ASC
		LIMIT ?`,
		day, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Weekly sums entries with from <= date < until per user.
func (s *LeaderboardStore) Weekly(ctx context.Context, from, until calendar.Date, limit int) ([]model.WeeklyStanding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT le.user_id, u.username,
			SUM(le.score) AS total_score,
			SUM(le.meals_logged),
			SUM(CASE WHEN le.meals_logged > 0 THEN 1 ELSE 0 END)
		FROM leaderboard_entries le
		JOIN users u ON u.id = le.user_id
		WHERE le.date >= ? AND le.date < ?
		GROUP BY le.user_id, u.username
		ORDER BY total_score DESC, le.user_id ASC
		LIMIT ?`,
		from, until, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list weekly leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []model.WeeklyStanding
	for rows.Next() {
		var w model.WeeklyStanding
		if err := rows.Scan(&w.UserID, &w.Username, &w.TotalScore, &w.MealsLogged, &w.DaysActive); err != nil {
			return nil, fmt.Errorf("scan weekly standing: %w", err)
		}
		standings = append(standings, w)
	}
	return standings, rows.Err()
}

// CountAbove returns how many entries on day have a score strictly greater
// than score.
func (s *LeaderboardStore) CountAbove(ctx context.Context, day calendar.Date, score int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leaderboard_entries WHERE date = ? AND score > ?`,
		day, score,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count leaderboard entries: %w", err)
	}
	return n, nil
}
