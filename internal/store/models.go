package store

import (
	"errors"
	"time"
)

// ErrUnknownFitnessMode is returned when a fitness mode id is not recognised
var ErrUnknownFitnessMode = errors.New("unknown fitness mode")

// Collection keys, one JSON document per user per key
const (
	KeyLog                 = "dailyLog"
	KeyGoal                = "userGoal"
	KeyFitnessMode         = "currentFitnessMode"
	KeyPlannedMeals        = "plannedMeals"
	KeyMilestones          = "achievedMilestones"
	KeyWater               = "waterIntakeRecords"
	KeySleep               = "sleepRecords"
	KeySharedFeed          = "sharedMealsFeed"
	KeyCompletedChallenges = "completedChallenges"
	KeyPoints              = "userPoints"
)

// DateLayout is the calendar date format used by planned meals, water and sleep records
const DateLayout = "2006-01-02"

// NutritionFact is the structured result of a food lookup (AI, barcode or manual entry)
type NutritionFact struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	ServingSizeG *float64 `json:"serving_size_g,omitempty"`
}

// LogEntry is one logged food item
type LogEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fat           float64 `json:"fat"`
	Quantity      string  `json:"quantity"`
	LoggedAtMilli int64   `json:"timestamp"`
}

// LoggedAt returns the entry timestamp in the given location
func (e LogEntry) LoggedAt(loc *time.Location) time.Time {
	return time.UnixMilli(e.LoggedAtMilli).In(loc)
}

// UserGoal holds the user's self-defined base daily calorie goal
type UserGoal struct {
	BaseCalories float64 `json:"baseCalories"`
}

// DefaultBaseCalories is the goal every user starts with
const DefaultBaseCalories = 2000

// DefaultGoal returns the goal used before the user sets one
func DefaultGoal() UserGoal {
	return UserGoal{BaseCalories: DefaultBaseCalories}
}

// FitnessMode adjusts the base calorie goal
type FitnessMode string

const (
	ModeMaintenance FitnessMode = "maintenance"
	ModeWeightLoss  FitnessMode = "weightLoss"
	ModeMuscleGain  FitnessMode = "muscleGain"
)

// FitnessModes lists the supported modes in display order
var FitnessModes = []FitnessMode{ModeMaintenance, ModeWeightLoss, ModeMuscleGain}

// ParseFitnessMode accepts the stored id or a dashed/lowercase spelling ("weight-loss")
func ParseFitnessMode(s string) (FitnessMode, error) {
	switch s {
	case "maintenance", "maintain":
		return ModeMaintenance, nil
	case "weightLoss", "weight-loss", "weightloss", "loss":
		return ModeWeightLoss, nil
	case "muscleGain", "muscle-gain", "musclegain", "gain":
		return ModeMuscleGain, nil
	}
	return "", ErrUnknownFitnessMode
}

// Label returns a human-readable name for the mode
func (m FitnessMode) Label() string {
	switch m {
	case ModeWeightLoss:
		return "Weight Loss"
	case ModeMuscleGain:
		return "Muscle Gain"
	default:
		return "Maintenance"
	}
}

// MealType is the slot a planned meal belongs to
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists meal slots in the order of a day
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// PlannedMeal is a food item scheduled for a date
type PlannedMeal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Quantity    string   `json:"quantity"`
	PlannedDate string   `json:"plannedDate"` // YYYY-MM-DD
	MealType    MealType `json:"mealType"`
}

// Milestone is an achieved badge; never removed once recorded
type Milestone struct {
	ID           string `json:"id"`
	AchievedDate int64  `json:"achievedDate"` // unix millis
}

// Challenge is a completed point-scoring challenge
type Challenge struct {
	ID            string `json:"id"`
	CompletedDate int64  `json:"completedDate"` // unix millis
	PointsAwarded int    `json:"pointsAwarded"`
}

// Water units
const (
	UnitML = "ml"
	UnitOZ = "oz"
)

// WaterRecord is one logged drink
type WaterRecord struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Amount        float64 `json:"amount"`
	Unit          string  `json:"unit"` // "ml" or "oz"
	LoggedAtMilli int64   `json:"timestamp"`
}

// Sleep quality values
const (
	SleepPoor = "poor"
	SleepFair = "fair"
	SleepGood = "good"
)

// SleepRecord is the night of sleep ending on Date
type SleepRecord struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"` // morning the sleep ended
	DurationHours float64 `json:"durationHours"`
	Quality       string  `json:"quality,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	LoggedAtMilli int64   `json:"timestamp"`
}

// SharedMeal is a log entry published to the meal feed
type SharedMeal struct {
	LogEntry
	SharedByDisplayName string `json:"sharedByDisplayName"`
	SharedByUID         string `json:"sharedByUid"`
	SharedAtMilli       int64  `json:"sharedAt"`
}

// Profile carries the signed-in user's attributes
type Profile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Name returns the best available display name
func (p *Profile) Name() string {
	if p == nil {
		return "Anonymous"
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	return "Anonymous"
}

// Auth represents the signed-in account and its OAuth tokens
type Auth struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Profile returns the account attributes as a Profile
func (a *Auth) Profile() *Profile {
	return &Profile{UID: a.UserID, Email: a.Email, DisplayName: a.DisplayName}
}
