package analysis

import (
	"strings"
	"time"

	"nutrilog/internal/store"
)

// RuleContext is the snapshot every milestone and challenge rule reads.
// Rules must only read it; all state changes happen in the Evaluator.
type RuleContext struct {
	Entries      []store.LogEntry
	Streak       int
	PlannedMeals []store.PlannedMeal
	Goal         store.UserGoal
	Mode         store.FitnessMode
	Water        []store.WaterRecord
	Sleep        []store.SleepRecord
	Now          time.Time
}

// Today returns the local calendar date of ctx.Now
func (ctx RuleContext) Today() string {
	return DayKey(ctx.Now)
}

// MilestoneRule awards a badge the first time Check holds
type MilestoneRule struct {
	ID          string
	Name        string
	Description string
	Check       func(ctx RuleContext) bool
}

// ChallengeRule awards RewardPoints the first time Check holds
type ChallengeRule struct {
	ID           string
	Name         string
	Description  string
	RewardPoints int
	Check        func(ctx RuleContext, completed []store.Challenge, profile *store.Profile) bool
}

// MilestoneRules is the milestone catalog, evaluated in order
var MilestoneRules = []MilestoneRule{
	{
		ID:          "firstLog",
		Name:        "First Bite",
		Description: "Log your first food item.",
		Check:       func(ctx RuleContext) bool { return len(ctx.Entries) > 0 },
	},
	{
		ID:          "streak3",
		Name:        "On a Roll",
		Description: "Log food 3 days in a row.",
		Check:       func(ctx RuleContext) bool { return ctx.Streak >= 3 },
	},
	{
		ID:          "streak7",
		Name:        "Week Warrior",
		Description: "Log food 7 days in a row.",
		Check:       func(ctx RuleContext) bool { return ctx.Streak >= 7 },
	},
	{
		ID:          "logged10ItemsToday",
		Name:        "Variety Day",
		Description: "Log 10 different foods in a single day.",
		Check: func(ctx RuleContext) bool {
			return distinctNamesOn(ctx.Entries, ctx.Now) >= 10
		},
	},
	{
		ID:          "logged50ItemsTotal",
		Name:        "Dedicated Logger",
		Description: "Log 50 food items in total.",
		Check:       func(ctx RuleContext) bool { return len(ctx.Entries) >= 50 },
	},
	{
		ID:          "plannerPro",
		Name:        "Planner Pro",
		Description: "Plan 5 meals ahead.",
		Check:       func(ctx RuleContext) bool { return len(ctx.PlannedMeals) >= 5 },
	},
	{
		ID:          "goalSetter",
		Name:        "Goal Setter",
		Description: "Customise your calorie goal or fitness mode.",
		Check: func(ctx RuleContext) bool {
			return ctx.Goal.BaseCalories != store.DefaultBaseCalories || ctx.Mode != store.ModeMaintenance
		},
	},
}

// ChallengeRules is the challenge catalog, evaluated in order
var ChallengeRules = []ChallengeRule{
	{
		ID:           "logStreak5",
		Name:         "Five Day Streak",
		Description:  "Keep a 5 day logging streak.",
		RewardPoints: 50,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			return ctx.Streak >= 5
		},
	},
	{
		ID:           "logStreak14",
		Name:         "Fortnight Focus",
		Description:  "Keep a 14 day logging streak.",
		RewardPoints: 150,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			return ctx.Streak >= 14
		},
	},
	{
		ID:           "try3NewFoodsToday",
		Name:         "Mix It Up",
		Description:  "Log 3 different foods today.",
		RewardPoints: 30,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			return distinctNamesOn(ctx.Entries, ctx.Now) >= 3
		},
	},
	{
		ID:           "planFullWeek",
		Name:         "Week Planned",
		Description:  "Plan meals on 7 different days.",
		RewardPoints: 75,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			return PlannedDays(ctx.PlannedMeals) >= 7
		},
	},
	{
		ID:           "hydrationHeroToday",
		Name:         "Hydration Hero",
		Description:  "Drink 2000 ml of water today.",
		RewardPoints: 20,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			return WaterTotalML(ctx.Water, ctx.Today()) >= DefaultWaterGoalML
		},
	},
	{
		ID:           "sleepChampionToday",
		Name:         "Sleep Champion",
		Description:  "Sleep 8 hours or more last night.",
		RewardPoints: 20,
		Check: func(ctx RuleContext, _ []store.Challenge, _ *store.Profile) bool {
			rec := SleepForDate(ctx.Sleep, ctx.Today())
			return rec != nil && rec.DurationHours >= DefaultSleepGoalHours
		},
	},
}

// FindMilestoneRule looks up a milestone definition by id
func FindMilestoneRule(id string) (MilestoneRule, bool) {
	for _, r := range MilestoneRules {
		if r.ID == id {
			return r, true
		}
	}
	return MilestoneRule{}, false
}

// FindChallengeRule looks up a challenge definition by id
func FindChallengeRule(id string) (ChallengeRule, bool) {
	for _, r := range ChallengeRules {
		if r.ID == id {
			return r, true
		}
	}
	return ChallengeRule{}, false
}

// distinctNamesOn counts distinct lowercased names logged on day's calendar date
func distinctNamesOn(entries []store.LogEntry, day time.Time) int {
	key := DayKey(day)
	loc := day.Location()

	names := make(map[string]struct{})
	for _, e := range entries {
		if DayKey(e.LoggedAt(loc)) == key {
			names[strings.ToLower(e.Name)] = struct{}{}
		}
	}
	return len(names)
}
