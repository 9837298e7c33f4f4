package app

import (
	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
)

// Value is one feature as it entered the vector.
type Value struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
	Estimated bool    `json:"estimated"`
}

// BPReading is a systolic/diastolic pair and its category. It is absent when
// only a single blood pressure value was supplied.
type BPReading struct {
	Systolic  float64             `json:"systolic"`
	Diastolic float64             `json:"diastolic"`
	Category  estimate.BPCategory `json:"category"`
	Estimated bool                `json:"estimated"`
}

// Assessment is the result of deriving a form and, when enabled, predicting on it.
type Assessment struct {
	Values            []Value          `json:"values"`
	Vector            features.Vector  `json:"vector"`
	BP                *BPReading       `json:"bp,omitempty"`
	PredictionEnabled bool             `json:"prediction_enabled"`
	Outcome           *predict.Outcome `json:"prediction"`
}

// Estimated lists the names of derived values.
func (a Assessment) Estimated() []string {
	var out []string
	for _, v := range a.Values {
		if v.Estimated {
			out = append(out, v.Name)
		}
	}
	return out
}

// Value returns the named value.
func (a Assessment) Value(name string) (Value, bool) {
	for _, v := range a.Values {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

var units = [features.Size]string{
	features.Glucose:       "mg/dL",
	features.BloodPressure: "mmHg",
	features.SkinThickness: "mm",
	features.Insulin:       "mu U/ml",
	features.BMI:           "kg/m²",
	features.Age:           "years",
}

func newValues(v features.Vector, estimated [features.Size]bool) []Value {
	names := features.Names()
	out := make([]Value, features.Size)
	for i := range v {
		out[i] = Value{Name: names[i], Value: v[i], Unit: units[i], Estimated: estimated[i]}
	}
	return out
}
