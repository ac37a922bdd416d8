package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"nutrilog/internal/analysis"
	"nutrilog/internal/logger"
	"nutrilog/internal/store"
)

var (
	ErrEntryNotFound     = errors.New("entry not found")
	ErrInvalidGoal       = errors.New("calorie goal must be greater than zero")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrInvalidHours      = errors.New("sleep hours must be greater than 0 and at most 24")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrInvalidUnit       = errors.New("unit must be ml or oz")
	ErrInvalidMealType   = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrInvalidQuality    = errors.New("sleep quality must be poor, fair or good")
)

// Clock returns the current time; tests substitute a fixed one
type Clock func() time.Time

// UserState is a fully materialized snapshot of one user's collections
type UserState struct {
	Entries      []store.LogEntry
	Goal         store.UserGoal
	Mode         store.FitnessMode
	PlannedMeals []store.PlannedMeal
	Water        []store.WaterRecord
	Sleep        []store.SleepRecord
	SharedFeed   []store.SharedMeal
	Achievements analysis.Achievements
}

// Options configures a Tracker
type Options struct {
	Profile   *store.Profile
	Clock     Clock
	Evaluator *analysis.Evaluator
	// OnAchievement is called with every evaluation that unlocked something
	OnAchievement func(analysis.Evaluation)
}

// Tracker is one user's session: it owns the in-memory state, persists each
// changed collection explicitly and re-checks achievements after every change.
type Tracker struct {
	mu      sync.Mutex
	kv      store.KV
	userID  string
	profile *store.Profile
	clock   Clock
	eval    *analysis.Evaluator
	notify  func(analysis.Evaluation)
	state   UserState
}

// NewTracker loads every collection for userID and runs an initial achievement check
func NewTracker(kv store.KV, userID string, opts Options) (*Tracker, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	t := &Tracker{
		kv:      kv,
		userID:  userID,
		profile: opts.Profile,
		clock:   opts.Clock,
		eval:    opts.Evaluator,
		notify:  opts.OnAchievement,
	}
	if t.clock == nil {
		t.clock = time.Now
	}
	if t.eval == nil {
		t.eval = analysis.NewEvaluator()
	}

	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// UserID returns the id whose data this tracker manages
func (t *Tracker) UserID() string {
	return t.userID
}

// Profile returns the signed-in profile, nil when running locally
func (t *Tracker) Profile() *store.Profile {
	return t.profile
}

// Now returns the tracker's current time
func (t *Tracker) Now() time.Time {
	return t.clock()
}

// Reload replaces the in-memory state with what is persisted and re-checks
// achievements against it. The lock is held throughout so no mutation can
// commit between the read and the swap.
func (t *Tracker) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := loadState(t.kv, t.userID)
	if err != nil {
		return err
	}
	t.state = state

	if err := t.recheck(); err != nil {
		logger.Warn("achievement check after reload not saved", "user", t.userID, "err", err)
	}
	return nil
}

// Snapshot returns a copy of the current state
func (t *Tracker) Snapshot() UserState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

func loadState(kv store.KV, userID string) (UserState, error) {
	state := UserState{
		Goal: store.DefaultGoal(),
		Mode: store.ModeMaintenance,
	}

	var mode string
	collections := []struct {
		key string
		v   any
	}{
		{store.KeyLog, &state.Entries},
		{store.KeyGoal, &state.Goal},
		{store.KeyFitnessMode, &mode},
		{store.KeyPlannedMeals, &state.PlannedMeals},
		{store.KeyMilestones, &state.Achievements.Milestones},
		{store.KeyWater, &state.Water},
		{store.KeySleep, &state.Sleep},
		{store.KeySharedFeed, &state.SharedFeed},
		{store.KeyCompletedChallenges, &state.Achievements.Challenges},
		{store.KeyPoints, &state.Achievements.Points},
	}
	for _, c := range collections {
		if _, err := store.LoadJSON(kv, userID, c.key, c.v); err != nil {
			return UserState{}, fmt.Errorf("loading user state: %w", err)
		}
	}

	if state.Goal.BaseCalories <= 0 {
		logger.Warn("stored goal is not positive, using default", "user", userID, "goal", state.Goal.BaseCalories)
		state.Goal = store.DefaultGoal()
	}
	if mode != "" {
		parsed, err := store.ParseFitnessMode(mode)
		if err != nil {
			logger.Warn("unknown stored fitness mode, using maintenance", "user", userID, "mode", mode)
			parsed = store.ModeMaintenance
		}
		state.Mode = parsed
	}

	sortSleep(state.Sleep)
	sortFeed(state.SharedFeed)
	return state, nil
}

// save persists one collection. A failed save leaves the in-memory state in
// place; the whole collection is written again on the next change.
func (t *Tracker) save(key string, v any) error {
	if err := store.SaveJSON(t.kv, t.userID, key, v); err != nil {
		logger.Warn("save failed", "user", t.userID, "key", key, "err", err)
		return err
	}
	logger.Debug("saved", "user", t.userID, "key", key)
	return nil
}

// commit persists key and then re-checks achievements. Both run even if the
// first fails so achievement state tracks the in-memory snapshot.
func (t *Tracker) commit(key string, v any) error {
	saveErr := t.save(key, v)
	checkErr := t.recheck()
	return errors.Join(saveErr, checkErr)
}

// recheck evaluates every rule against the current snapshot and persists any
// newly unlocked milestones, challenges and points. Callers hold t.mu.
func (t *Tracker) recheck() error {
	now := t.clock()
	ctx := analysis.RuleContext{
		Entries:      t.state.Entries,
		Streak:       analysis.LoggingStreak(t.state.Entries, now),
		PlannedMeals: t.state.PlannedMeals,
		Goal:         t.state.Goal,
		Mode:         t.state.Mode,
		Water:        t.state.Water,
		Sleep:        t.state.Sleep,
		Now:          now,
	}

	result := t.eval.Evaluate(t.state.Achievements, ctx, t.profile)
	if !result.Changed() {
		return nil
	}
	t.state.Achievements = result.Achievements

	for _, m := range result.NewMilestones {
		logger.Info("milestone achieved", "user", t.userID, "milestone", m.ID)
	}
	for _, c := range result.NewChallenges {
		logger.Info("challenge completed", "user", t.userID, "challenge", c.ID, "points", c.PointsAwarded)
	}
	if t.notify != nil {
		t.notify(result)
	}

	var errs []error
	if len(result.NewMilestones) > 0 {
		errs = append(errs, t.save(store.KeyMilestones, t.state.Achievements.Milestones))
	}
	if len(result.NewChallenges) > 0 {
		errs = append(errs,
			t.save(store.KeyCompletedChallenges, t.state.Achievements.Challenges),
			t.save(store.KeyPoints, t.state.Achievements.Points),
		)
	}
	return errors.Join(errs...)
}

func (s UserState) clone() UserState {
	c := s
	c.Entries = append([]store.LogEntry(nil), s.Entries...)
	c.PlannedMeals = append([]store.PlannedMeal(nil), s.PlannedMeals...)
	c.Water = append([]store.WaterRecord(nil), s.Water...)
	c.Sleep = append([]store.SleepRecord(nil), s.Sleep...)
	c.SharedFeed = append([]store.SharedMeal(nil), s.SharedFeed...)
	c.Achievements.Milestones = append([]store.Milestone(nil), s.Achievements.Milestones...)
	c.Achievements.Challenges = append([]store.Challenge(nil), s.Achievements.Challenges...)
	return c
}

// sortSleep orders records newest date first
func sortSleep(records []store.SleepRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}

// sortFeed orders shared meals newest first
func sortFeed(feed []store.SharedMeal) {
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].SharedAtMilli > feed[j].SharedAtMilli
	})
}
