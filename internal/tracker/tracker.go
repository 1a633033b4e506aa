// Package tracker implements the meal ledger and everything derived from it:
// daily aggregates, leaderboard scoring, and weekly rollups.
package tracker

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

// Clock returns the current day.
type Clock func() calendar.Date

// ClockIn returns a Clock that reads today's date in loc.
func ClockIn(loc *time.Location) Clock {
	return func() calendar.Date { return calendar.Today(loc) }
}

// RecomputeQueue accepts leaderboard recompute requests for a (user, day).
type RecomputeQueue interface {
	Enqueue(userID int64, day calendar.Date)
}

type Config struct {
	Location  *time.Location
	Workers   int
	QueueSize int
}

// Tracker bundles the services that share one database.
type Tracker struct {
	Ledger     *Ledger
	Aggregates *Aggregates
	Scorer     *Scorer
	Rollup     *Rollup
	Dispatcher *Dispatcher
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Tracker {
	users := store.NewUserStore(db)
	meals := store.NewMealStore(db)
	aggregates := store.NewAggregateStore(db)
	entries := store.NewLeaderboardStore(db)
	today := ClockIn(cfg.Location)

	scorer := NewScorer(users, aggregates, entries, today)
	dispatcher := NewDispatcher(scorer.RecomputeTask, cfg.Workers, cfg.QueueSize, logger)

	return &Tracker{
		Ledger:     NewLedger(db, meals, aggregates, users, dispatcher, today),
		Aggregates: NewAggregates(aggregates, users, dispatcher, today),
		Scorer:     scorer,
		Rollup:     NewRollup(aggregates, users, today),
		Dispatcher: dispatcher,
	}
}
