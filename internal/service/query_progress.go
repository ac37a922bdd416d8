package service

import (
	"time"

	"nutrilog/internal/analysis"
)

// MilestoneStatus is one catalog milestone and whether it was reached
type MilestoneStatus struct {
	ID          string
	Name        string
	Description string
	Achieved    bool
	AchievedAt  time.Time
}

// ChallengeStatus is one catalog challenge and whether it was completed
type ChallengeStatus struct {
	ID           string
	Name         string
	Description  string
	RewardPoints int
	Completed    bool
	CompletedAt  time.Time
}

// ProgressData contains all data needed for the progress screen
type ProgressData struct {
	Streak     int
	Points     int
	Milestones []MilestoneStatus
	Challenges []ChallengeStatus
	Achieved   int
	Completed  int
}

// Progress reports the streak and every milestone and challenge in catalog order
func (t *Tracker) Progress() *ProgressData {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	data := &ProgressData{
		Streak: analysis.LoggingStreak(t.state.Entries, now),
		Points: t.state.Achievements.Points,
	}

	achieved := make(map[string]int64)
	for _, m := range t.state.Achievements.Milestones {
		achieved[m.ID] = m.AchievedDate
	}
	for _, rule := range analysis.MilestoneRules {
		status := MilestoneStatus{ID: rule.ID, Name: rule.Name, Description: rule.Description}
		if at, ok := achieved[rule.ID]; ok {
			status.Achieved = true
			status.AchievedAt = time.UnixMilli(at).In(now.Location())
			data.Achieved++
		}
		data.Milestones = append(data.Milestones, status)
	}

	completed := make(map[string]int64)
	for _, c := range t.state.Achievements.Challenges {
		completed[c.ID] = c.CompletedDate
	}
	for _, rule := range analysis.ChallengeRules {
		status := ChallengeStatus{
			ID:           rule.ID,
			Name:         rule.Name,
			Description:  rule.Description,
			RewardPoints: rule.RewardPoints,
		}
		if at, ok := completed[rule.ID]; ok {
			status.Completed = true
			status.CompletedAt = time.UnixMilli(at).In(now.Location())
			data.Completed++
		}
		data.Challenges = append(data.Challenges, status)
	}

	return data
}
