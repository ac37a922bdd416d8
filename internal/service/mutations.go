package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutrilog/internal/store"
)

// NewLogEntry turns a lookup result into a log entry stamped at loggedAt
func NewLogEntry(fact store.NutritionFact, loggedAt time.Time) (store.LogEntry, error) {
	name := strings.TrimSpace(fact.Name)
	if name == "" {
		return store.LogEntry{}, fmt.Errorf("food name is required")
	}
	if err := validateMacros(fact); err != nil {
		return store.LogEntry{}, err
	}

	return store.LogEntry{
		ID:            uuid.NewString(),
		Name:          name,
		Calories:      fact.Calories,
		Protein:       fact.Protein,
		Carbs:         fact.Carbs,
		Fat:           fact.Fat,
		Quantity:      servingLabel(fact.ServingSizeG),
		LoggedAtMilli: loggedAt.UnixMilli(),
	}, nil
}

func validateMacros(fact store.NutritionFact) error {
	for _, v := range []float64{fact.Calories, fact.Protein, fact.Carbs, fact.Fat} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidAmount
		}
	}
	return nil
}

// servingLabel formats the quantity label, e.g. "100g (1 serving)"
func servingLabel(size *float64) string {
	g := float64(DefaultServingSizeG)
	if size != nil && *size > 0 {
		g = *size
	}
	return strconv.FormatFloat(g, 'f', -1, 64) + "g (1 serving)"
}

// LogFood records a food item at the current time
func (t *Tracker) LogFood(fact store.NutritionFact) (store.LogEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, err := NewLogEntry(fact, t.clock())
	if err != nil {
		return store.LogEntry{}, err
	}
	t.state.Entries = append(t.state.Entries, entry)
	return entry, t.commit(store.KeyLog, t.state.Entries)
}

// RemoveFood deletes a log entry by id
func (t *Tracker) RemoveFood(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries, ok := removeByID(t.state.Entries, id, func(e store.LogEntry) string { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	t.state.Entries = entries
	return t.commit(store.KeyLog, t.state.Entries)
}

// SetBaseCalorieGoal replaces the base daily calorie goal
func (t *Tracker) SetBaseCalorieGoal(calories float64) error {
	if calories <= 0 || math.IsNaN(calories) || math.IsInf(calories, 0) {
		return ErrInvalidGoal
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Goal = store.UserGoal{BaseCalories: calories}
	return t.commit(store.KeyGoal, t.state.Goal)
}

// SetFitnessMode changes the mode adjusting the calorie goal
func (t *Tracker) SetFitnessMode(mode store.FitnessMode) error {
	if !validMode(mode) {
		return store.ErrUnknownFitnessMode
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Mode = mode
	return t.commit(store.KeyFitnessMode, string(t.state.Mode))
}

func validMode(mode store.FitnessMode) bool {
	for _, m := range store.FitnessModes {
		if m == mode {
			return true
		}
	}
	return false
}

// PlanInput describes a meal to schedule
type PlanInput struct {
	Fact     store.NutritionFact
	Date     string // YYYY-MM-DD
	MealType store.MealType
}

// AddPlannedMeal schedules a meal for a date and meal slot
func (t *Tracker) AddPlannedMeal(in PlanInput) (store.PlannedMeal, error) {
	if err := validateDate(in.Date); err != nil {
		return store.PlannedMeal{}, err
	}
	if !validMealType(in.MealType) {
		return store.PlannedMeal{}, ErrInvalidMealType
	}
	entry, err := NewLogEntry(in.Fact, time.Time{})
	if err != nil {
		return store.PlannedMeal{}, err
	}

	meal := store.PlannedMeal{
		ID:          entry.ID,
		Name:        entry.Name,
		Calories:    entry.Calories,
		Protein:     entry.Protein,
		Carbs:       entry.Carbs,
		Fat:         entry.Fat,
		Quantity:    entry.Quantity,
		PlannedDate: in.Date,
		MealType:    in.MealType,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.PlannedMeals = append(t.state.PlannedMeals, meal)
	return meal, t.commit(store.KeyPlannedMeals, t.state.PlannedMeals)
}

// RemovePlannedMeal deletes a planned meal by id
func (t *Tracker) RemovePlannedMeal(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	meals, ok := removeByID(t.state.PlannedMeals, id, func(m store.PlannedMeal) string { return m.ID })
	if !ok {
		return ErrEntryNotFound
	}
	t.state.PlannedMeals = meals
	return t.commit(store.KeyPlannedMeals, t.state.PlannedMeals)
}

func validMealType(mt store.MealType) bool {
	for _, m := range store.MealTypes {
		if m == mt {
			return true
		}
	}
	return false
}

// AddWater records a drink for today
func (t *Tracker) AddWater(amount float64, unit string) (store.WaterRecord, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return store.WaterRecord{}, ErrAmountNotPositive
	}
	if unit != store.UnitML && unit != store.UnitOZ {
		return store.WaterRecord{}, ErrInvalidUnit
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	rec := store.WaterRecord{
		ID:            uuid.NewString(),
		Date:          now.Format(store.DateLayout),
		Amount:        amount,
		Unit:          unit,
		LoggedAtMilli: now.UnixMilli(),
	}
	t.state.Water = append(t.state.Water, rec)
	return rec, t.commit(store.KeyWater, t.state.Water)
}

// RemoveWater deletes a water record by id
func (t *Tracker) RemoveWater(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, ok := removeByID(t.state.Water, id, func(r store.WaterRecord) string { return r.ID })
	if !ok {
		return ErrEntryNotFound
	}
	t.state.Water = records
	return t.commit(store.KeyWater, t.state.Water)
}

// SleepInput describes a night of sleep; Date defaults to today
type SleepInput struct {
	DurationHours float64
	Date          string
	Quality       string
	Notes         string
}

// AddSleep records sleep for a date, replacing any record already on that date
func (t *Tracker) AddSleep(in SleepInput) (store.SleepRecord, error) {
	if in.DurationHours <= 0 || in.DurationHours > 24 || math.IsNaN(in.DurationHours) {
		return store.SleepRecord{}, ErrInvalidHours
	}
	if in.Date != "" {
		if err := validateDate(in.Date); err != nil {
			return store.SleepRecord{}, err
		}
	}
	switch in.Quality {
	case "", store.SleepPoor, store.SleepFair, store.SleepGood:
	default:
		return store.SleepRecord{}, ErrInvalidQuality
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	rec := store.SleepRecord{
		ID:            uuid.NewString(),
		Date:          in.Date,
		DurationHours: in.DurationHours,
		Quality:       in.Quality,
		Notes:         strings.TrimSpace(in.Notes),
		LoggedAtMilli: now.UnixMilli(),
	}
	if rec.Date == "" {
		rec.Date = now.Format(store.DateLayout)
	}

	kept := t.state.Sleep[:0:0]
	for _, r := range t.state.Sleep {
		if r.Date != rec.Date {
			kept = append(kept, r)
		}
	}
	t.state.Sleep = append(kept, rec)
	sortSleep(t.state.Sleep)
	return rec, t.commit(store.KeySleep, t.state.Sleep)
}

// RemoveSleep deletes a sleep record by id
func (t *Tracker) RemoveSleep(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, ok := removeByID(t.state.Sleep, id, func(r store.SleepRecord) string { return r.ID })
	if !ok {
		return ErrEntryNotFound
	}
	t.state.Sleep = records
	return t.commit(store.KeySleep, t.state.Sleep)
}

// ShareMeal publishes a logged entry to the feed. Sharing the same entry
// again moves it to the top instead of duplicating it.
func (t *Tracker) ShareMeal(entryID string) (store.SharedMeal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var found *store.LogEntry
	for i := range t.state.Entries {
		if t.state.Entries[i].ID == entryID {
			found = &t.state.Entries[i]
			break
		}
	}
	if found == nil {
		return store.SharedMeal{}, ErrEntryNotFound
	}

	uid := ""
	if t.profile != nil {
		uid = t.profile.UID
	}
	shared := store.SharedMeal{
		LogEntry:            *found,
		SharedByDisplayName: t.profile.Name(),
		SharedByUID:         uid,
		SharedAtMilli:       t.clock().UnixMilli(),
	}

	feed, _ := removeByID(t.state.SharedFeed, entryID, func(m store.SharedMeal) string { return m.ID })
	t.state.SharedFeed = append([]store.SharedMeal{shared}, feed...)
	sortFeed(t.state.SharedFeed)
	return shared, t.save(store.KeySharedFeed, t.state.SharedFeed)
}

// RemoveSharedMeal takes a meal off the feed
func (t *Tracker) RemoveSharedMeal(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	feed, ok := removeByID(t.state.SharedFeed, id, func(m store.SharedMeal) string { return m.ID })
	if !ok {
		return ErrEntryNotFound
	}
	t.state.SharedFeed = feed
	return t.save(store.KeySharedFeed, t.state.SharedFeed)
}

func validateDate(date string) error {
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// removeByID returns items without the element whose id matches
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if idOf(item) == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}
