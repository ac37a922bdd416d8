package analysis

import (
	"sort"

	"nutrilog/internal/logger"
	"nutrilog/internal/store"
)

// Achievements is a user's milestone, challenge and point state
type Achievements struct {
	Milestones []store.Milestone
	Challenges []store.Challenge
	Points     int
}

// Evaluation is the outcome of one evaluation cycle
type Evaluation struct {
	Achievements  Achievements
	NewMilestones []store.Milestone
	NewChallenges []store.Challenge
	PointsEarned  int
}

// Changed reports whether anything new was achieved
func (e Evaluation) Changed() bool {
	return len(e.NewMilestones) > 0 || len(e.NewChallenges) > 0
}

// Evaluator applies rule catalogs to a RuleContext.
// Achievement is monotonic: recorded milestones and challenges are never
// removed, and a challenge's points are added only when it first completes.
type Evaluator struct {
	milestones []MilestoneRule
	challenges []ChallengeRule
}

// NewEvaluator returns an evaluator over the built-in catalogs
func NewEvaluator() *Evaluator {
	return &Evaluator{milestones: MilestoneRules, challenges: ChallengeRules}
}

// NewEvaluatorWithRules returns an evaluator over custom catalogs
func NewEvaluatorWithRules(milestones []MilestoneRule, challenges []ChallengeRule) *Evaluator {
	return &Evaluator{milestones: milestones, challenges: challenges}
}

// Evaluate checks every rule not yet achieved and merges new achievements into prev.
// prev is not modified.
func (ev *Evaluator) Evaluate(prev Achievements, ctx RuleContext, profile *store.Profile) Evaluation {
	stamp := ctx.Now.UnixMilli()

	result := Evaluation{
		Achievements: Achievements{
			Milestones: append([]store.Milestone(nil), prev.Milestones...),
			Challenges: append([]store.Challenge(nil), prev.Challenges...),
			Points:     prev.Points,
		},
	}

	achieved := make(map[string]bool, len(prev.Milestones))
	for _, m := range prev.Milestones {
		achieved[m.ID] = true
	}
	for _, rule := range ev.milestones {
		if achieved[rule.ID] {
			continue
		}
		check := rule.Check
		if safeCheck(rule.ID, func() bool { return check != nil && check(ctx) }) {
			m := store.Milestone{ID: rule.ID, AchievedDate: stamp}
			result.NewMilestones = append(result.NewMilestones, m)
			result.Achievements.Milestones = append(result.Achievements.Milestones, m)
			achieved[rule.ID] = true
		}
	}

	completed := make(map[string]bool, len(prev.Challenges))
	for _, c := range prev.Challenges {
		completed[c.ID] = true
	}
	completedSoFar := append([]store.Challenge(nil), prev.Challenges...)
	for _, rule := range ev.challenges {
		if completed[rule.ID] {
			continue
		}
		check := rule.Check
		if safeCheck(rule.ID, func() bool { return check != nil && check(ctx, completedSoFar, profile) }) {
			c := store.Challenge{ID: rule.ID, CompletedDate: stamp, PointsAwarded: rule.RewardPoints}
			result.NewChallenges = append(result.NewChallenges, c)
			result.Achievements.Challenges = append(result.Achievements.Challenges, c)
			result.PointsEarned += rule.RewardPoints
			completed[rule.ID] = true
		}
	}
	result.Achievements.Points += result.PointsEarned

	sort.SliceStable(result.Achievements.Milestones, func(i, j int) bool {
		return result.Achievements.Milestones[i].AchievedDate < result.Achievements.Milestones[j].AchievedDate
	})
	sort.SliceStable(result.Achievements.Challenges, func(i, j int) bool {
		return result.Achievements.Challenges[i].CompletedDate < result.Achievements.Challenges[j].CompletedDate
	})

	return result
}

// safeCheck runs a rule, treating a panic as "not achieved"
func safeCheck(id string, check func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("achievement rule panicked", "rule", id, "panic", r)
			ok = false
		}
	}()
	return check()
}
