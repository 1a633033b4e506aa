package tracker

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/database"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []Task
}

func (q *recordingQueue) Enqueue(userID int64, day calendar.Date) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, Task{UserID: userID, Day: day})
}

func (q *recordingQueue) has(userID int64, day string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, t := range q.tasks {
		if t.UserID == userID && t.Day.String() == day {
			return true
		}
	}
	return false
}

type testEnv struct {
	db      *sql.DB
	users   *store.UserStore
	entries *store.LeaderboardStore
	ledger  *Ledger
	aggs    *Aggregates
	scorer  *Scorer
	rollup  *Rollup
	queue   *recordingQueue
	today   calendar.Date
}

// Monday
const testToday = "2024-03-04"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, ":memory:")
}

// newTestEnvAt opens the database at path, so file-backed tests can use more
// than one connection.
func newTestEnvAt(t *testing.T, path string) *testEnv {
	t.Helper()
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	today := calendar.MustParse(testToday)
	clock := func() calendar.Date { return today }
	users := store.NewUserStore(db)
	meals := store.NewMealStore(db)
	aggregates := store.NewAggregateStore(db)
	entries := store.NewLeaderboardStore(db)
	queue := &recordingQueue{}

	return &testEnv{
		db:      db,
		users:   users,
		entries: entries,
		ledger:  NewLedger(db, meals, aggregates, users, queue, clock),
		aggs:    NewAggregates(aggregates, users, queue, clock),
		scorer:  NewScorer(users, aggregates, entries, clock),
		rollup:  NewRollup(aggregates, users, clock),
		queue:   queue,
		today:   today,
	}
}

func (e *testEnv) createUser(t *testing.T, email, username string) *model.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), email, username, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) logMeal(t *testing.T, userID int64, typ model.MealType, day string, kcal float64) *model.Meal {
	t.Helper()
	m, err := e.ledger.LogMeal(context.Background(), userID, MealInput{
		Name:      string(typ) + " " + day,
		Type:      typ,
		Date:      calendar.MustParse(day),
		Nutrition: model.Nutrition{Calories: kcal},
	})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	return m
}

func (e *testEnv) aggregate(t *testing.T, userID int64, day string) *model.DailyAggregate {
	t.Helper()
	agg, err := e.aggs.Get(context.Background(), userID, calendar.MustParse(day))
	if err != nil {
		t.Fatalf("get aggregate %s: %v", day, err)
	}
	return agg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
