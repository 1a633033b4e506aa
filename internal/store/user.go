package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a copy of the store bound to tx.
func (s *UserStore) WithTx(tx *sql.Tx) *UserStore {
	return &UserStore{db: tx}
}

func scanUser(sc scanner) (*model.User, error) {
	var u model.User
	var last calendar.Date
	err := sc.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.CalorieGoal, &u.WaterGoal, &u.Streak, &last,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if !last.IsZero() {
		u.LastLogDate = &last
	}
	return &u, nil
}

const userCols = `id, email, username, password_hash, calorie_goal, water_goal, streak, last_log_date, created_at, updated_at`

func (s *UserStore) Create(ctx context.Context, email, username, passwordHash string) (*model.User, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, username, password_hash, calorie_goal, water_goal) VALUES (?, ?, ?, ?, ?)`,
		email, username, passwordHash, model.DefaultCalorieGoal, model.DefaultWaterGoal,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the username and goals. Existing aggregates keep the
// goals they were created with.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, username string, calorieGoal, waterGoal float64) (*model.User, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, calorie_goal = ?, water_goal = ? WHERE id = ?`,
		username, calorieGoal, waterGoal, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(ctx, id)
}

// AdvanceStreak records a log on day. Logging again on the same day keeps the
// streak, logging the day after extends it, and any gap restarts it at 1.
// Days earlier than the last logged day leave the row untouched.
func (s *UserStore) AdvanceStreak(ctx context.Context, id int64, day calendar.Date) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET
			streak = CASE
				WHEN last_log_date = ? THEN streak
				WHEN last_log_date = ? THEN streak + 1
				ELSE 1
			END,
			last_log_date = ?
		WHERE id = ? AND (last_log_date IS NULL OR last_log_date <= ?)`,
		day, day.AddDays(-1), day, id, day,
	)
	if err != nil {
		return fmt.Errorf("advance streak: %w", err)
	}
	return nil
}
