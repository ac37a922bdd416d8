package analysis

import (
	"math"

	"nutrilog/internal/store"
)

// Calorie adjustments applied by each fitness mode
const (
	WeightLossAdjustment = -300
	MuscleGainAdjustment = 300
)

// Fixed macro split of the calorie goal and energy density per gram
const (
	ProteinShare    = 0.30
	CarbsShare      = 0.40
	FatShare        = 0.30
	KcalPerGProtein = 4
	KcalPerGCarbs   = 4
	KcalPerGFat     = 9
)

// CalorieAdjustment returns the mode's offset to the base goal.
// Unknown modes behave like maintenance.
func CalorieAdjustment(mode store.FitnessMode) float64 {
	switch mode {
	case store.ModeWeightLoss:
		return WeightLossAdjustment
	case store.ModeMuscleGain:
		return MuscleGainAdjustment
	default:
		return 0
	}
}

// EffectiveGoal is the base calorie goal adjusted by the fitness mode, never negative
func EffectiveGoal(goal store.UserGoal, mode store.FitnessMode) float64 {
	return math.Max(0, goal.BaseCalories+CalorieAdjustment(mode))
}

// MacroTargets derives daily nutrient targets from a calorie goal
func MacroTargets(calorieGoal float64) MacroTotals {
	return MacroTotals{
		Calories: calorieGoal,
		Protein:  calorieGoal * ProteinShare / KcalPerGProtein,
		Carbs:    calorieGoal * CarbsShare / KcalPerGCarbs,
		Fat:      calorieGoal * FatShare / KcalPerGFat,
	}
}
