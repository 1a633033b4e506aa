package tracker

import (
	"context"
	"database/sql"
	"strings"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
	"github.com/joan-ouma/nutrifit-sub000/internal/nutrition"
	"github.com/joan-ouma/nutrifit-sub000/internal/store"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
	maxNameLength   = 200
	maxRangeDays    = 366
)

// MealInput is a new meal. A zero Date means today.
type MealInput struct {
	Name        string             `json:"name"`
	Type        model.MealType     `json:"type"`
	Date        calendar.Date      `json:"date"`
	Nutrition   model.Nutrition    `json:"nutrition"`
	Ingredients []model.Ingredient `json:"ingredients"`
	ServingSize string             `json:"serving_size"`
	Notes       string             `json:"notes"`
}

// MealPatch holds the fields to change on a meal; nil fields are kept.
type MealPatch struct {
	Name        *string             `json:"name"`
	Type        *model.MealType     `json:"type"`
	Date        *calendar.Date      `json:"date"`
	Nutrition   *model.Nutrition    `json:"nutrition"`
	Ingredients *[]model.Ingredient `json:"ingredients"`
	ServingSize *string             `json:"serving_size"`
	Notes       *string             `json:"notes"`
}

type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Ledger records meals. Every write adjusts the day's aggregate in the same
// transaction and then queues a leaderboard recompute for each touched day.
type Ledger struct {
	db         *sql.DB
	meals      *store.MealStore
	aggregates *store.AggregateStore
	users      *store.UserStore
	queue      RecomputeQueue
	today      Clock
}

func NewLedger(db *sql.DB, meals *store.MealStore, aggregates *store.AggregateStore, users *store.UserStore, queue RecomputeQueue, today Clock) *Ledger {
	return &Ledger{
		db:         db,
		meals:      meals,
		aggregates: aggregates,
		users:      users,
		queue:      queue,
		today:      today,
	}
}

func validateMeal(m *model.Meal) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return invalid("name", "name is required")
	}
	if len(m.Name) > maxNameLength {
		return invalid("name", "name must be at most %d characters", maxNameLength)
	}
	if !m.Type.Valid() {
		return invalid("type", "type must be one of breakfast, lunch, dinner, snack")
	}
	if field, err := nutrition.Validate(m.Nutrition); err != nil {
		return invalid(field, "%s", err.Error())
	}
	for i, ing := range m.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return invalid("ingredients", "ingredient %d needs a name", i+1)
		}
		if ing.Calories < 0 {
			return invalid("ingredients", "ingredient %d has negative calories", i+1)
		}
	}
	return nil
}

// LogMeal stores a new meal for userID.
func (l *Ledger) LogMeal(ctx context.Context, userID int64, in MealInput) (*model.Meal, error) {
	m := model.Meal{
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		Date:        in.Date,
		Nutrition:   in.Nutrition,
		Ingredients: in.Ingredients,
		ServingSize: in.ServingSize,
		Notes:       in.Notes,
	}
	if m.Date.IsZero() {
		m.Date = l.today()
	}
	if err := validateMeal(&m); err != nil {
		return nil, err
	}

	var created *model.Meal
	err := store.InTx(ctx, l.db, func(tx *sql.Tx) error {
		users := l.users.WithTx(tx)
		u, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrNotFound
		}

		created, err = l.meals.WithTx(tx).Create(ctx, m)
		if err != nil {
			return err
		}
		if _, err := l.aggregates.WithTx(tx).Adjust(ctx, userID, created.Date, nutrition.MealAdded(*created)); err != nil {
			return err
		}
		return users.AdvanceStreak(ctx, userID, created.Date)
	})
	if err != nil {
		return nil, err
	}

	l.queue.Enqueue(userID, created.Date)
	return created, nil
}

// GetMeal returns one of the user's meals.
func (l *Ledger) GetMeal(ctx context.Context, userID, mealID int64) (*model.Meal, error) {
	m, err := l.meals.GetForUser(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

// DeleteMeal removes a meal and takes it back out of its day's aggregate.
func (l *Ledger) DeleteMeal(ctx context.Context, userID, mealID int64) error {
	var removed *model.Meal
	err := store.InTx(ctx, l.db, func(tx *sql.Tx) error {
		meals := l.meals.WithTx(tx)
		m, err := meals.GetForUser(ctx, userID, mealID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrNotFound
		}
		if _, err := meals.Delete(ctx, userID, mealID); err != nil {
			return err
		}
		if _, err := l.aggregates.WithTx(tx).Adjust(ctx, userID, m.Date, nutrition.MealRemoved(*m)); err != nil {
			return err
		}
		removed = m
		return nil
	})
	if err != nil {
		return err
	}

	l.queue.Enqueue(userID, removed.Date)
	return nil
}

func applyPatch(m model.Meal, p MealPatch) model.Meal {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Date != nil && !p.Date.IsZero() {
		m.Date = *p.Date
	}
	if p.Nutrition != nil {
		m.Nutrition = *p.Nutrition
	}
	if p.Ingredients != nil {
		m.Ingredients = *p.Ingredients
	}
	if p.ServingSize != nil {
		m.ServingSize = *p.ServingSize
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	return m
}

// UpdateMeal edits a meal and applies the difference to the affected
// aggregates. Moving a meal to another day takes it out of the old day and
// adds it to the new one.
func (l *Ledger) UpdateMeal(ctx context.Context, userID, mealID int64, patch MealPatch) (*model.Meal, error) {
	var old, updated *model.Meal
	err := store.InTx(ctx, l.db, func(tx *sql.Tx) error {
		meals := l.meals.WithTx(tx)
		aggregates := l.aggregates.WithTx(tx)

		var err error
		old, err = meals.GetForUser(ctx, userID, mealID)
		if err != nil {
			return err
		}
		if old == nil {
			return ErrNotFound
		}

		next := applyPatch(*old, patch)
		if err := validateMeal(&next); err != nil {
			return err
		}
		updated, err = meals.Update(ctx, next)
		if err != nil {
			return err
		}

		if updated.Date == old.Date {
			_, err = aggregates.Adjust(ctx, userID, old.Date, nutrition.MealChanged(*old, *updated))
			return err
		}
		if _, err := aggregates.Adjust(ctx, userID, old.Date, nutrition.MealRemoved(*old)); err != nil {
			return err
		}
		_, err = aggregates.Adjust(ctx, userID, updated.Date, nutrition.MealAdded(*updated))
		return err
	})
	if err != nil {
		return nil, err
	}

	l.queue.Enqueue(userID, old.Date)
	if updated.Date != old.Date {
		l.queue.Enqueue(userID, updated.Date)
	}
	return updated, nil
}

// ListMealsByDate returns one page of the user's meals for day, newest
// first. A zero day means today.
func (l *Ledger) ListMealsByDate(ctx context.Context, userID int64, day calendar.Date, page Page) ([]model.Meal, error) {
	if day.IsZero() {
		day = l.today()
	}
	page = page.normalize()
	meals, err := l.meals.ListByDate(ctx, userID, day, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	return meals, nil
}

// ResolveRange fills a zero to with today and a zero from with the 30 days
// ending at to, then checks the span.
func (l *Ledger) ResolveRange(from, to calendar.Date) (calendar.Date, calendar.Date, error) {
	if to.IsZero() {
		to = l.today()
	}
	if from.IsZero() {
		from = to.AddDays(-29)
	}
	if to.Before(from) {
		return from, to, invalid("from", "from must not be after to")
	}
	if to.DaysSince(from) >= maxRangeDays {
		return from, to, invalid("to", "range must be at most %d days", maxRangeDays)
	}
	return from, to, nil
}

// ListMealsInRange returns the user's meals with from <= date <= to, oldest
// first. Zero bounds are resolved as in ResolveRange.
func (l *Ledger) ListMealsInRange(ctx context.Context, userID int64, from, to calendar.Date) ([]model.Meal, error) {
	from, to, err := l.ResolveRange(from, to)
	if err != nil {
		return nil, err
	}
	meals, err := l.meals.ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	return meals, nil
}
