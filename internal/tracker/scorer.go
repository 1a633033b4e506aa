package tracker

import (
	"context"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/nutrition"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

// LeaderboardSize is the number of rows returned by the leaderboards.
const LeaderboardSize = 50

// Scorer derives leaderboard entries from daily aggregates. Entries are
// always rebuilt from scratch, so a recompute can be repeated safely.
type Scorer struct {
	users      *store.UserStore
	aggregates *store.AggregateStore
	entries    *store.LeaderboardStore
	today      Clock
	notify     func(model.LeaderboardEntry)
}

func NewScorer(users *store.UserStore, aggregates *store.AggregateStore, entries *store.LeaderboardStore, today Clock) *Scorer {
	return &Scorer{
		users:      users,
		aggregates: aggregates,
		entries:    entries,
		today:      today,
	}
}

// OnUpdate registers fn to be called with every saved entry. Set it before
// any recompute runs.
func (s *Scorer) OnUpdate(fn func(model.LeaderboardEntry)) {
	s.notify = fn
}

// Recompute rebuilds the entry for (userID, day). It returns (nil, nil)
// without writing when the user or the day's aggregate does not exist.
func (s *Scorer) Recompute(ctx context.Context, userID int64, day calendar.Date) (*model.LeaderboardEntry, error) {
	agg, err := s.aggregates.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	saved, err := s.entries.Upsert(ctx, nutrition.Score(*agg, *u))
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify(*saved)
	}
	return saved, nil
}

// RecomputeTask adapts Recompute for the Dispatcher.
func (s *Scorer) RecomputeTask(ctx context.Context, t Task) error {
	_, err := s.Recompute(ctx, t.UserID, t.Day)
	return err
}

// DailyLeaderboard returns the top entries for day.
func (s *Scorer) DailyLeaderboard(ctx context.Context, day calendar.Date) ([]model.LeaderboardEntry, error) {
	if day.IsZero() {
		day = s.today()
	}
	entries, err := s.entries.ListByDate(ctx, day, LeaderboardSize)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, nil
}

// WeeklyLeaderboard sums the seven days starting at since. A zero since
// means the seven days ending today.
func (s *Scorer) WeeklyLeaderboard(ctx context.Context, since calendar.Date) ([]model.WeeklyStanding, error) {
	if since.IsZero() {
		since = s.today().AddDays(-6)
	}
	standings, err := s.entries.Weekly(ctx, since, since.AddDays(7), LeaderboardSize)
	if err != nil {
		return nil, err
	}
	if standings == nil {
		standings = []model.WeeklyStanding{}
	}
	return standings, nil
}

// UserRank refreshes the caller's entry for day and ranks it. Users with
// equal scores share a rank.
func (s *Scorer) UserRank(ctx context.Context, userID int64, day calendar.Date) (*model.UserRank, error) {
	if day.IsZero() {
		day = s.today()
	}
	entry, err := s.Recompute(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry, err = s.entries.Get(ctx, userID, day)
		if err != nil {
			return nil, err
		}
	}
	if entry == nil {
		return &model.UserRank{Date: day}, nil
	}

	above, err := s.entries.CountAbove(ctx, day, entry.Score)
	if err != nil {
		return nil, err
	}
	return &model.UserRank{
		Date:   day,
		Rank:   above + 1,
		Score:  entry.Score,
		Ranked: true,
	}, nil
}
