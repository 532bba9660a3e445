package goal

import (
	"fmt"
	"math"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// Plan is a computed weight plan: when the target should be reached at
// the policy pace.
type Plan struct {
	TargetDate    tracker.Date
	PaceKgPerWeek float64
}

// ComputePlan derives the target date from the weight delta and the
// configured pace, at least one week out. Maintain plans end where
// they start with zero pace.
func ComputePlan(goalType GoalType, startWeight, targetWeight float64, startDate tracker.Date, pace PaceConfig) Plan {
	rate, ok := pace.Rate(goalType)
	if !ok {
		return Plan{TargetDate: startDate, PaceKgPerWeek: 0}
	}
	deltaKg := math.Abs(targetWeight - startWeight)
	weeks := int(math.Ceil(deltaKg / rate))
	if weeks < 1 {
		weeks = 1
	}
	return Plan{TargetDate: startDate.AddDays(weeks * 7), PaceKgPerWeek: rate}
}

// PlanDescription phrases the pace policy for display.
func PlanDescription(goalType GoalType, pace PaceConfig) string {
	switch goalType {
	case GoalLose:
		return fmt.Sprintf("Based on a safe %g kg/week loss — sustainable and healthy.", pace.LoseKgPerWeek)
	case GoalGain:
		return fmt.Sprintf("Based on a steady %g kg/week gain — focused on lean mass.", pace.GainKgPerWeek)
	default:
		return "Maintain your current weight."
	}
}
