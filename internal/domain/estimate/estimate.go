// Package estimate derives clinical inputs that a user could not supply.
//
// Every function is pure and deterministic. The constants are part of the
// contract with the fitted classifier: changing one changes predictions.
// Inputs are not validated here; callers range-check them first.
package estimate

import "math"

// Insulin estimate constants.
const (
	insulinBase             = 50
	insulinHighGlucose      = 140
	insulinHighGlucoseBoost = 40
	insulinMidGlucose       = 100
	insulinMidGlucoseBoost  = 20
	insulinObeseBMI         = 30
	insulinObeseBoost       = 30
	insulinPerPregnancy     = 2
)

// Glucose estimate constants.
const (
	glucoseBase            = 85
	glucosePerYear         = 0.6
	glucosePerBMI          = 0.4
	glucoseHighInsulin     = 150
	glucoseHighInsulinStep = 20
	glucoseInactiveStep    = 15
)

const centimetresPerMetre = 100

// BMI computes body-mass index from weight in kilograms and height in
// centimetres, rounded to 2 decimals. A non-positive height yields 0.
func BMI(weightKG, heightCM float64) float64 {
	heightM := heightCM / centimetresPerMetre
	if heightM <= 0 {
		return 0
	}
	return Round(weightKG/(heightM*heightM), 2)
}

// EstimateInsulin estimates fasting insulin (mu U/ml). It is monotonic
// nondecreasing in all three inputs.
func EstimateInsulin(glucose, bmi float64, pregnancies int) float64 {
	insulin := float64(insulinBase)
	switch {
	case glucose > insulinHighGlucose:
		insulin += insulinHighGlucoseBoost
	case glucose > insulinMidGlucose:
		insulin += insulinMidGlucoseBoost
	}
	if bmi > insulinObeseBMI {
		insulin += insulinObeseBoost
	}
	insulin += float64(pregnancies * insulinPerPregnancy)
	return Round(insulin, 1)
}

// EstimateGlucose estimates fasting glucose (mg/dL).
func EstimateGlucose(age, bmi, insulin float64, active bool) float64 {
	glucose := glucoseBase + glucosePerYear*age + glucosePerBMI*bmi
	if insulin > glucoseHighInsulin {
		glucose += glucoseHighInsulinStep
	}
	if !active {
		glucose += glucoseInactiveStep
	}
	return Round(glucose, 1)
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
