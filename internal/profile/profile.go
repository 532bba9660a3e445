// Package profile reads the on-device user profile and weigh-in
// history. It is a read-only collaborator: the logging engine consumes
// these fields (the goal timeline in particular) but never writes
// them; the UI layer owns mutation.
package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/goal"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// Profile is the stored user profile plus weigh-in history.
type Profile struct {
	Name              string             `toml:"name"`
	Gender            goal.Gender        `toml:"gender"`
	Birthdate         tracker.Date       `toml:"birthdate"`
	HeightCm          float64            `toml:"height_cm"`
	CurrentWeightKg   float64            `toml:"current_weight_kg"`
	TargetWeightKg    float64            `toml:"target_weight_kg"`
	Goal              goal.ProfileGoal   `toml:"goal"`
	ActivityLevel     goal.ActivityLevel `toml:"activity_level"`
	DailyCalorieGoal  int                `toml:"daily_calorie_goal"`
	PlanStartDate     tracker.Date       `toml:"plan_start_date"`
	PlanStartWeightKg float64            `toml:"plan_start_weight_kg"`
	PlanTargetDate    tracker.Date       `toml:"plan_target_date"`
	PlanPaceKgPerWeek float64            `toml:"plan_pace_kg_per_week"`

	WeightEntries []WeightEntry `toml:"weight_entries"`
}

// WeightEntry is one weigh-in row as stored.
type WeightEntry struct {
	Date     tracker.Date `toml:"date"`
	WeightKg float64      `toml:"weight_kg"`
	BMI      float64      `toml:"bmi"`
}

// GoalType collapses the stored six-way goal to the timeline's
// three-way direction.
func (p *Profile) GoalType() goal.GoalType {
	return goal.GoalTypeFor(p.Goal)
}

// Weights converts the stored entries for the goal timeline.
func (p *Profile) Weights() []goal.WeightEntry {
	out := make([]goal.WeightEntry, len(p.WeightEntries))
	for i, e := range p.WeightEntries {
		out[i] = goal.WeightEntry{Date: e.Date, WeightKg: e.WeightKg, BMI: e.BMI}
	}
	return out
}

// Read decodes a Profile from the provided reader.
func Read(r io.Reader) (*Profile, error) {
	var p Profile
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// ReadFromFile reads a Profile from the specified path. A missing file
// returns (nil, nil): the user has not completed onboarding yet.
func ReadFromFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading profile from %s: %w", path, err)
	}
	return p, nil
}
