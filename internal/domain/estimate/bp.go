package estimate

// Blood pressure estimate constants (mmHg).
const (
	systolicBase     = 100
	systolicPerYear  = 0.5
	systolicPerBMI   = 0.3
	diastolicBase    = 60
	diastolicPerYear = 0.2
	diastolicPerBMI  = 0.2

	smokerSystolic    = 5
	smokerDiastolic   = 3
	inactiveSystolic  = 5
	inactiveDiastolic = 2
	stressSystolic    = 4
	stressDiastolic   = 3
)

// Lifestyle carries the boolean flags that shift the blood pressure and
// glucose estimates. The flags are independent of each other.
type Lifestyle struct {
	Smoker bool `json:"smoker"`
	Active bool `json:"active"`
	Stress bool `json:"stress"`
}

// BloodPressure is a systolic/diastolic pair in mmHg.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// Mean returns the arithmetic mean of the pair. This is the value the
// classifier was fit against in the BloodPressure column.
func (bp BloodPressure) Mean() float64 {
	return (bp.Systolic + bp.Diastolic) / 2
}

// Category classifies the pair with InterpretBP.
func (bp BloodPressure) Category() BPCategory {
	return InterpretBP(bp.Systolic, bp.Diastolic)
}

// EstimateBP estimates a systolic/diastolic pair from age, BMI and lifestyle.
// Each value is rounded to 1 decimal.
func EstimateBP(age, bmi float64, l Lifestyle) BloodPressure {
	systolic := systolicBase + systolicPerYear*age + systolicPerBMI*bmi
	diastolic := diastolicBase + diastolicPerYear*age + diastolicPerBMI*bmi
	if l.Smoker {
		systolic += smokerSystolic
		diastolic += smokerDiastolic
	}
	if !l.Active {
		systolic += inactiveSystolic
		diastolic += inactiveDiastolic
	}
	if l.Stress {
		systolic += stressSystolic
		diastolic += stressDiastolic
	}
	return BloodPressure{
		Systolic:  Round(systolic, 1),
		Diastolic: Round(diastolic, 1),
	}
}

// BPCategory is a blood pressure classification label.
type BPCategory string

// Blood pressure categories, in evaluation order.
const (
	BPLow                BPCategory = "Low (Hypotension)"
	BPNormal             BPCategory = "Normal"
	BPElevated           BPCategory = "Elevated"
	BPHighStage1         BPCategory = "High (Stage 1)"
	BPHighStage2         BPCategory = "High (Stage 2)"
	BPHypertensiveCrisis BPCategory = "Hypertensive Crisis"
	BPUnknown            BPCategory = "Unknown"
)

// String implements fmt.Stringer.
func (c BPCategory) String() string { return string(c) }

// InterpretBP classifies a reading. The rules overlap and the first match
// wins, so the order below must not change: 125/85 is Stage 1 only because
// the Elevated rule fails on diastolic first.
func InterpretBP(systolic, diastolic float64) BPCategory {
	switch {
	case systolic < 90 || diastolic < 60:
		return BPLow
	case systolic >= 90 && systolic < 120 && diastolic >= 60 && diastolic < 80:
		return BPNormal
	case systolic >= 120 && systolic < 130 && diastolic < 80:
		return BPElevated
	case (systolic >= 130 && systolic < 140) || (diastolic >= 80 && diastolic < 90):
		return BPHighStage1
	case (systolic >= 140 && systolic < 180) || (diastolic >= 90 && diastolic < 120):
		return BPHighStage2
	case systolic >= 180 || diastolic >= 120:
		return BPHypertensiveCrisis
	default:
		return BPUnknown
	}
}
