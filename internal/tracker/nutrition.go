package tracker

import "math"

// Amount is the two-variant unit selection: raw grams, or a named
// portion times a count. The sealed interface forces the single
// exhaustive switch in GramsTotal to be the only dispatch point.
type Amount interface {
	isAmount()
	Mode() UnitMode
}

// Grams logs a raw gram weight.
type Grams struct {
	Input float64
}

func (Grams) isAmount()      {}
func (Grams) Mode() UnitMode { return UnitGrams }

// PortionAmount logs a count of a named portion.
type PortionAmount struct {
	PortionID    string
	PortionGrams float64
	Label        string
	Quantity     float64
}

func (PortionAmount) isAmount()      {}
func (PortionAmount) Mode() UnitMode { return UnitPortion }

// GramsTotal resolves an amount to total grams. Never negative.
func GramsTotal(a Amount) float64 {
	switch v := a.(type) {
	case Grams:
		return math.Max(0, v.Input)
	case PortionAmount:
		return math.Max(0, v.Quantity*v.PortionGrams)
	default:
		// Sealed; unreachable.
		return 0
	}
}

// Scale computes macro totals from per-100g values and total grams.
// This is the sole place nutrition totals are computed. A non-positive
// gramsTotal yields all zeros: the "nothing logged yet" form state, not
// an error. Each field is rounded to one decimal, half away from zero.
func Scale(per Per100g, gramsTotal float64) Totals {
	if gramsTotal <= 0 {
		return Totals{}
	}
	factor := gramsTotal / 100
	return Totals{
		Calories: Round1(per.Calories * factor),
		ProteinG: Round1(per.ProteinG * factor),
		CarbsG:   Round1(per.CarbsG * factor),
		FatG:     Round1(per.FatG * factor),
	}
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
