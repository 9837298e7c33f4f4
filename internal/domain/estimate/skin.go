package estimate

import (
	"fmt"
	"math"
	"strings"
)

// Linear skin-thickness model anchored at the reference population point.
const (
	skinRefBMI  = 30.22
	skinRefAge  = 31.19
	skinBase    = 27.36
	skinUpper   = 33.24
	skinBMIHigh = 35.14
	skinAgeHigh = 36.85

	skinMin = 5
	skinMax = 99
)

var (
	skinPerBMI  = (skinUpper - skinBase) / (skinBMIHigh - skinRefBMI)
	skinPerYear = (skinUpper - skinBase) / (skinAgeHigh - skinRefAge)
)

// EstimateSkinThickness estimates triceps skin-fold thickness (mm) from BMI
// and age, clamped into [5, 99] and rounded to 2 decimals.
func EstimateSkinThickness(bmi, age float64) float64 {
	skin := skinBase + skinPerBMI*(bmi-skinRefBMI) + skinPerYear*(age-skinRefAge)
	skin = math.Max(skinMin, math.Min(skin, skinMax))
	return Round(skin, 2)
}

// SkinThicknessBands is the older four-bucket estimate. It ignores age.
func SkinThicknessBands(bmi float64) float64 {
	switch {
	case bmi < 18.5:
		return 10
	case bmi < 25:
		return 20
	case bmi < 30:
		return 25
	default:
		return 35
	}
}

// SkinFormula selects a skin-thickness estimator.
type SkinFormula string

// Supported skin-thickness formulas.
const (
	SkinLinear SkinFormula = "linear"
	SkinBands  SkinFormula = "bands"
)

// ParseSkinFormula maps a config value to a SkinFormula. Empty selects linear.
func ParseSkinFormula(s string) (SkinFormula, error) {
	switch SkinFormula(strings.ToLower(strings.TrimSpace(s))) {
	case "", SkinLinear:
		return SkinLinear, nil
	case SkinBands:
		return SkinBands, nil
	default:
		return "", fmt.Errorf("unknown skin formula: %s", s)
	}
}

// Estimate applies the formula.
func (f SkinFormula) Estimate(bmi, age float64) float64 {
	if f == SkinBands {
		return SkinThicknessBands(bmi)
	}
	return EstimateSkinThickness(bmi, age)
}
