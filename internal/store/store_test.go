package store

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/database"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(context.Background(), email, email[:1], "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
