package goal

import (
	"math"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// Gender as stored in the user profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel as stored in the user profile.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "lightly_active"
	ActivityModerate   ActivityLevel = "moderately_active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ProfileGoal is the six-way onboarding goal. GoalTypeFor collapses it
// to the three-way direction the timeline reasons about.
type ProfileGoal string

const (
	ProfileGoalLoseWeight       ProfileGoal = "lose_weight"
	ProfileGoalGainMuscle       ProfileGoal = "gain_muscle"
	ProfileGoalMaintainWeight   ProfileGoal = "maintain_weight"
	ProfileGoalBoostEnergy      ProfileGoal = "boost_energy"
	ProfileGoalImproveNutrition ProfileGoal = "improve_nutrition"
	ProfileGoalGainWeight       ProfileGoal = "gain_weight"
)

// GoalTypeFor maps a profile goal onto the timeline's direction.
func GoalTypeFor(g ProfileGoal) GoalType {
	switch g {
	case ProfileGoalLoseWeight:
		return GoalLose
	case ProfileGoalGainWeight, ProfileGoalGainMuscle:
		return GoalGain
	default:
		return GoalMaintain
	}
}

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityVeryActive: 1.725,
}

var goalAdjustments = map[ProfileGoal]float64{
	ProfileGoalLoseWeight:       -500,
	ProfileGoalGainMuscle:       300,
	ProfileGoalMaintainWeight:   0,
	ProfileGoalBoostEnergy:      0,
	ProfileGoalImproveNutrition: 0,
	ProfileGoalGainWeight:       500,
}

// minDailyCalories is the floor the daily goal never drops below.
const minDailyCalories = 1200

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Female and other use the female constant.
func BMR(gender Gender, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// Age returns whole years between birthdate and today.
func Age(birthdate, today tracker.Date) int {
	b, t := birthdate.Time(), today.Time()
	age := t.Year() - b.Year()
	if t.Month() < b.Month() || (t.Month() == b.Month() && t.Day() < b.Day()) {
		age--
	}
	return age
}

// DailyCalories computes the daily calorie goal: BMR scaled by the
// activity multiplier, adjusted for the goal, never below 1200.
func DailyCalories(gender Gender, weightKg, heightCm float64, birthdate tracker.Date, activity ActivityLevel, pgoal ProfileGoal, today tracker.Date) int {
	bmr := BMR(gender, weightKg, heightCm, Age(birthdate, today))
	tdee := bmr * activityMultipliers[activity]
	adjusted := tdee + goalAdjustments[pgoal]
	return int(math.Round(math.Max(adjusted, minDailyCalories)))
}
