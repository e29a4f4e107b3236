package services

import "math"

// Adherence scoring. Calories are weighted 60/40 against protein; going over
// the calorie target is penalized at twice the overage ratio, while extra
// protein is simply capped.

const (
	fallbackCalorieTarget = 2000
	fallbackProteinTarget = 150

	calorieWeight  = 0.6
	proteinWeight  = 0.4
	overagePenalty = 200 // score points lost per 100% overage
)

func CalorieSubScore(consumed, target float64) float64 {
	if target <= 0 {
		target = fallbackCalorieTarget
	}
	ratio := consumed / target
	if ratio <= 1.0 {
		return ratio * 100
	}
	return math.Max(0, 100-((ratio-1)*overagePenalty))
}

func ProteinSubScore(consumed, target float64) float64 {
	if target <= 0 {
		target = fallbackProteinTarget
	}
	return math.Min(100, (consumed/target)*100)
}

// AdherenceScore returns the composite 0-100 adherence metric.
func AdherenceScore(calories, protein, calorieTarget, proteinTarget float64) int {
	cal := CalorieSubScore(calories, calorieTarget)
	prot := ProteinSubScore(protein, proteinTarget)
	return int(math.Round(cal*calorieWeight + prot*proteinWeight))
}

// ScoreMessage mirrors the dashboard's qualitative bands.
func ScoreMessage(score int) string {
	switch {
	case score >= 85:
		return "Excellent!"
	case score >= 70:
		return "Good Job"
	case score >= 50:
		return "Fair Start"
	default:
		return "Needs Improvement"
	}
}
