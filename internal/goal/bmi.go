package goal

import "github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"

// BMI computes body mass index from height in cm and weight in kg,
// rounded to one decimal. Non-positive inputs yield 0.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return tracker.Round1(weightKg / (heightM * heightM))
}

// BMICategory labels a BMI value with the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
