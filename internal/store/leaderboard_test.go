package store

import (
	"context"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

func TestLeaderboardUpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLeaderboardStore(db)
	ctx := context.Background()
	u := createTestUser(t, db, "alice@example.com")
	day := calendar.MustParse("2024-03-01")

	first := model.LeaderboardEntry{
		UserID: u.ID, Username: "a", Date: day, Score: 85, MealsLogged: 3,
		Metrics: model.ScoreMetrics{CaloriesMet: true, PerfectDay: true},
	}
	if _, err := ls.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := model.LeaderboardEntry{UserID: u.ID, Username: "a", Date: day, Score: 10, MealsLogged: 1}
	got, err := ls.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got.Score != 10 || got.MealsLogged != 1 {
		t.Errorf("score/meals = %d/%d, want 10/1", got.Score, got.MealsLogged)
	}
	if got.Metrics.CaloriesMet || got.Metrics.PerfectDay {
		t.Errorf("metrics = %+v, want all false", got.Metrics)
	}
}

func TestLeaderboardListByDateOrder(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLeaderboardStore(db)
	ctx := context.Background()
	day := calendar.MustParse("2024-03-01")

	scores := map[string]int{"a@x.io": 50, "b@x.io": 80, "c@x.io": 50}
	ids := map[string]int64{}
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		u := createTestUser(t, db, email)
		ids[email] = u.ID
		if _, err := ls.Upsert(ctx, model.LeaderboardEntry{UserID: u.ID, Username: u.Username, Date: day, Score: scores[email]}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	entries, err := ls.ListByDate(ctx, day, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{ids["b@x.io"], ids["a@x.io"], ids["c@x.io"]}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.UserID != want[i] {
			t.Errorf("entries[%d].UserID = %d, want %d", i, e.UserID, want[i])
		}
	}

	n, err := ls.CountAbove(ctx, day, 50)
	if err != nil {
		t.Fatalf("count above: %v", err)
	}
	if n != 1 {
		t.Errorf("count above 50 = %d, want 1", n)
	}
}

func TestLeaderboardWeekly(t *testing.T) {
	db := setupTestDB(t)
	ls := NewLeaderboardStore(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	since := calendar.MustParse("2024-03-01")

	rows := []model.LeaderboardEntry{
		{UserID: alice.ID, Date: since, Score: 40, MealsLogged: 2},
		{UserID: alice.ID, Date: since.AddDays(3), Score: 40, MealsLogged: 2},
		{UserID: bob.ID, Date: since.AddDays(1), Score: 70, MealsLogged: 3},
		{UserID: bob.ID, Date: since.AddDays(7), Score: 500, MealsLogged: 9}, // outside window
	}
	for _, e := range rows {
		if _, err := ls.Upsert(ctx, e); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	standings, err := ls.Weekly(ctx, since, since.AddDays(7), 50)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("len = %d, want 2", len(standings))
	}
	if standings[0].UserID != alice.ID || standings[0].TotalScore != 80 || standings[0].DaysActive != 2 {
		t.Errorf("standings[0] = %+v, want alice with 80 over 2 days", standings[0])
	}
	if standings[1].UserID != bob.ID || standings[1].TotalScore != 70 {
		t.Errorf("standings[1] = %+v, want bob with 70", standings[1])
	}
	if standings[0].Username != alice.Username {
		t.Errorf("username = %q, want %q", standings[0].Username, alice.Username)
	}
}
