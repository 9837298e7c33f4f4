package app

import (
	"math"
	"strings"

	"github.com/okian/diarisk/internal/domain/estimate"
)

// Sex of the subject. Pregnancies are forced to zero for males.
type Sex string

// Supported sexes.
const (
	Female Sex = "female"
	Male   Sex = "male"
)

// Form is one submission. A nil pointer means "estimate it for me".
type Form struct {
	Sex         Sex `json:"sex" koanf:"sex"`
	Age         int `json:"age" koanf:"age"`
	Pregnancies int `json:"pregnancies" koanf:"pregnancies"`

	// BMI, or weight and height to derive it from.
	BMI      *float64 `json:"bmi,omitempty" koanf:"bmi"`
	WeightKG *float64 `json:"weight_kg,omitempty" koanf:"weight_kg"`
	HeightCM *float64 `json:"height_cm,omitempty" koanf:"height_cm"`

	SkinThickness *float64 `json:"skin_thickness,omitempty" koanf:"skin_thickness"`
	Insulin       *float64 `json:"insulin,omitempty" koanf:"insulin"`
	Glucose       *float64 `json:"glucose,omitempty" koanf:"glucose"`

	// Blood pressure as a systolic/diastolic pair, or as a single value.
	Systolic      *float64 `json:"systolic,omitempty" koanf:"systolic"`
	Diastolic     *float64 `json:"diastolic,omitempty" koanf:"diastolic"`
	BloodPressure *float64 `json:"blood_pressure,omitempty" koanf:"blood_pressure"`

	// Pedigree, or the diabetic relatives to score it from.
	Pedigree  *float64            `json:"pedigree,omitempty" koanf:"pedigree"`
	Relatives []estimate.Relative `json:"relatives,omitempty" koanf:"relatives"`

	Lifestyle Lifestyle `json:"lifestyle" koanf:"lifestyle"`
}

// Lifestyle flags feed the blood pressure and glucose estimates. Active
// defaults to true when omitted. GlucoseActive overrides Active for the
// glucose estimate only, for forms that ask about activity twice.
type Lifestyle struct {
	Smoker        bool  `json:"smoker" koanf:"smoker"`
	Active        *bool `json:"active,omitempty" koanf:"active"`
	GlucoseActive *bool `json:"glucose_active,omitempty" koanf:"glucose_active"`
	Stress        bool  `json:"stress" koanf:"stress"`
}

// resolve returns the flags for the blood pressure estimate and the activity
// flag for the glucose estimate.
func (l Lifestyle) resolve() (estimate.Lifestyle, bool) {
	active := true
	if l.Active != nil {
		active = *l.Active
	}
	glucoseActive := active
	if l.GlucoseActive != nil {
		glucoseActive = *l.GlucoseActive
	}
	return estimate.Lifestyle{Smoker: l.Smoker, Active: active, Stress: l.Stress}, glucoseActive
}

type bounds struct{ min, max float64 }

func (b bounds) check(field string, v float64) error {
	if math.IsNaN(v) || v < b.min || v > b.max {
		return fieldErr(field, "%v outside [%v, %v]", v, b.min, b.max)
	}
	return nil
}

// Accepted input ranges.
var (
	ageRange       = bounds{1, 120}
	pregnancyRange = bounds{0, 20}
	bmiRange       = bounds{10, 60}
	weightRange    = bounds{10, 200}
	heightRange    = bounds{100, 250}
	skinRange      = bounds{0, 100}
	insulinRange   = bounds{0, 1000}
	glucoseRange   = bounds{0, 300}
	systolicRange  = bounds{70, 250}
	diastolicRange = bounds{40, 150}
	singleBPRange  = bounds{40, 250}
	pedigreeRange  = bounds{0, 2.5}
	maxRelatives   = 10
)

// Validate range-checks every supplied field and normalizes sex and relatives.
// The first violation is returned as a *FieldError.
func (f *Form) Validate() error {
	switch Sex(strings.ToLower(strings.TrimSpace(string(f.Sex)))) {
	case "", Female:
		f.Sex = Female
	case Male:
		f.Sex = Male
		f.Pregnancies = 0
	default:
		return fieldErr("sex", "unknown value %q", f.Sex)
	}

	if err := ageRange.check("age", float64(f.Age)); err != nil {
		return err
	}
	if err := pregnancyRange.check("pregnancies", float64(f.Pregnancies)); err != nil {
		return err
	}

	if f.BMI != nil {
		if err := bmiRange.check("bmi", *f.BMI); err != nil {
			return err
		}
	} else {
		if f.WeightKG == nil || f.HeightCM == nil {
			return fieldErr("bmi", "provide bmi, or weight_kg and height_cm")
		}
		if err := weightRange.check("weight_kg", *f.WeightKG); err != nil {
			return err
		}
		if err := heightRange.check("height_cm", *f.HeightCM); err != nil {
			return err
		}
	}

	if err := checkOptional("skin_thickness", f.SkinThickness, skinRange); err != nil {
		return err
	}
	if err := checkOptional("insulin", f.Insulin, insulinRange); err != nil {
		return err
	}
	if err := checkOptional("glucose", f.Glucose, glucoseRange); err != nil {
		return err
	}

	if err := f.validateBP(); err != nil {
		return err
	}

	if err := checkOptional("pedigree", f.Pedigree, pedigreeRange); err != nil {
		return err
	}
	if f.Pedigree == nil {
		if len(f.Relatives) > maxRelatives {
			return fieldErr("relatives", "at most %d relatives, got %d", maxRelatives, len(f.Relatives))
		}
		for i, r := range f.Relatives {
			parsed, err := estimate.ParseRelative(string(r))
			if err != nil {
				return fieldErr("relatives", "%v", err)
			}
			f.Relatives[i] = parsed
		}
	}
	return nil
}

func (f *Form) validateBP() error {
	pair := f.Systolic != nil || f.Diastolic != nil
	if pair && f.BloodPressure != nil {
		return fieldErr("blood_pressure", "give systolic and diastolic, or a single value, not both")
	}
	if f.BloodPressure != nil {
		return singleBPRange.check("blood_pressure", *f.BloodPressure)
	}
	if !pair {
		return nil
	}
	if f.Systolic == nil || f.Diastolic == nil {
		return fieldErr("blood_pressure", "systolic and diastolic must be given together")
	}
	if err := systolicRange.check("systolic", *f.Systolic); err != nil {
		return err
	}
	return diastolicRange.check("diastolic", *f.Diastolic)
}

func checkOptional(field string, v *float64, b bounds) error {
	if v == nil {
		return nil
	}
	return b.check(field, *v)
}
