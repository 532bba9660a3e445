// Package goal projects whether a user's weigh-in trend will meet
// their stated target by their stated date. Everything here is pure:
// status is recomputed fresh from the latest weight entries and the
// stored plan on every read, with no persisted transition history.
package goal

import (
	"math"
	"sort"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// GoalType is the three-way plan direction the timeline reasons about.
type GoalType string

const (
	GoalLose     GoalType = "lose"
	GoalMaintain GoalType = "maintain"
	GoalGain     GoalType = "gain"
)

// Status classifies the projected completion date against the plan.
type Status string

const (
	StatusOnTrack Status = "on_track"
	StatusAhead   Status = "ahead"
	StatusBehind  Status = "behind"
	StatusUnknown Status = "unknown"
)

// PaceConfig holds the pace policy. The defaults are hard-coded
// product choices carried over unchanged, kept configurable rather
// than re-derived.
type PaceConfig struct {
	LoseKgPerWeek  float64
	GainKgPerWeek  float64
	ToleranceWeeks float64
}

// DefaultPace returns the stock pace policy: 0.5 kg/week loss,
// 0.25 kg/week gain, ±1 week on-track tolerance.
func DefaultPace() PaceConfig {
	return PaceConfig{LoseKgPerWeek: 0.5, GainKgPerWeek: 0.25, ToleranceWeeks: 1}
}

// Rate returns the pace for a goal direction, or false for maintain.
func (p PaceConfig) Rate(goal GoalType) (float64, bool) {
	switch goal {
	case GoalLose:
		return p.LoseKgPerWeek, true
	case GoalGain:
		return p.GainKgPerWeek, true
	default:
		return 0, false
	}
}

// WeightEntry is one weigh-in, read from the profile store.
type WeightEntry struct {
	Date     tracker.Date
	WeightKg float64
	BMI      float64
}

// TrendWeight is the simple moving average of the most recent ≤7
// entries dated on or before asOf. ok is false with no eligible
// entries.
func TrendWeight(entries []WeightEntry, asOf tracker.Date) (float64, bool) {
	eligible := make([]WeightEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date <= asOf {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Date > eligible[j].Date
	})
	if len(eligible) > 7 {
		eligible = eligible[:7]
	}
	var sum float64
	for _, e := range eligible {
		sum += e.WeightKg
	}
	return sum / float64(len(eligible)), true
}

// TrackResult is the outcome of an on-track projection. ETADate is
// empty when no ETA applies (maintaining, or trend unknown).
type TrackResult struct {
	Status  Status
	ETADate tracker.Date
	Message string
}

// OnTrackStatus compares a trend-based ETA to the plan's target date.
// The projection is a linear pace heuristic, not a regression fit:
// remaining delta at the configured pace, days rounded up, then
// classified within the ±tolerance window.
func OnTrackStatus(
	entries []WeightEntry,
	startWeight, targetWeight float64,
	planTargetDate, today tracker.Date,
	goalType GoalType,
	pace PaceConfig,
) TrackResult {
	if goalType == GoalMaintain {
		return TrackResult{Status: StatusOnTrack, Message: "Maintaining"}
	}

	trendToday, ok := TrendWeight(entries, today)
	if !ok {
		return TrackResult{Status: StatusUnknown, Message: "Log weigh-ins to see if you're on track"}
	}

	remainingKg := math.Abs(targetWeight - trendToday)
	if remainingKg < 0.1 {
		return TrackResult{Status: StatusOnTrack, ETADate: today, Message: "Almost there!"}
	}

	rate, _ := pace.Rate(goalType)
	etaWeeks := remainingKg / rate
	etaDays := int(math.Ceil(etaWeeks * 7))
	etaDate := today.AddDays(etaDays)

	planDays := tracker.DaysBetween(planTargetDate, today)
	diffWeeks := math.Abs(float64(etaDays-planDays)) / 7

	switch {
	case diffWeeks <= pace.ToleranceWeeks:
		return TrackResult{Status: StatusOnTrack, ETADate: etaDate, Message: "On track!"}
	case etaDays < planDays:
		return TrackResult{Status: StatusAhead, ETADate: etaDate, Message: "Ahead of schedule!"}
	default:
		return TrackResult{Status: StatusBehind, ETADate: etaDate, Message: "A bit behind — keep going!"}
	}
}

// ProgressPct is the elapsed-time fraction of the plan, clamped to
// [0,1]. A plan whose target date is not after its start is complete.
func ProgressPct(start, target, today tracker.Date) float64 {
	totalDays := tracker.DaysBetween(target, start)
	if totalDays <= 0 {
		return 1
	}
	elapsed := float64(tracker.DaysBetween(today, start)) / float64(totalDays)
	return math.Min(1, math.Max(0, elapsed))
}

// WeeksElapsed counts whole weeks since the plan start, 0 at start.
func WeeksElapsed(start, today tracker.Date) int {
	days := tracker.DaysBetween(today, start)
	if days < 0 {
		return 0
	}
	return days / 7
}

// WeeksLeft counts weeks remaining until the target date, rounded up.
func WeeksLeft(target, today tracker.Date) int {
	days := tracker.DaysBetween(target, today)
	if days < 0 {
		return 0
	}
	return int(math.Ceil(float64(days) / 7))
}

// WeeksTotal is the plan length in weeks, at least 1.
func WeeksTotal(start, target tracker.Date) int {
	weeks := int(math.Ceil(float64(tracker.DaysBetween(target, start)) / 7))
	if weeks < 1 {
		return 1
	}
	return weeks
}
