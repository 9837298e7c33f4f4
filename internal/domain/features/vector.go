// Package features defines the fixed-order feature vector consumed by the
// diabetes classifier.
package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Size is the number of features the classifier was fit against.
const Size = 8

// Column positions. The order is fixed by the fitted model.
const (
	Pregnancies = iota
	Glucose
	BloodPressure
	SkinThickness
	Insulin
	BMI
	DiabetesPedigreeFunction
	Age
)

var names = [Size]string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigreeFunction",
	"Age",
}

// ErrDimension is returned when a vector does not have exactly Size values.
var ErrDimension = errors.New("feature vector must have 8 values")

// Fields is the named form of a Vector.
type Fields struct {
	Pregnancies              int
	Glucose                  float64
	BloodPressure            float64
	SkinThickness            float64
	Insulin                  float64
	BMI                      float64
	DiabetesPedigreeFunction float64
	Age                      int
}

// Vector is an eight-feature input row in canonical column order.
type Vector [Size]float64

// New builds a Vector from named fields.
func New(f Fields) Vector {
	return Vector{
		Pregnancies:              float64(f.Pregnancies),
		Glucose:                  f.Glucose,
		BloodPressure:            f.BloodPressure,
		SkinThickness:            f.SkinThickness,
		Insulin:                  f.Insulin,
		BMI:                      f.BMI,
		DiabetesPedigreeFunction: f.DiabetesPedigreeFunction,
		Age:                      float64(f.Age),
	}
}

// FromSlice copies values into a Vector.
func FromSlice(values []float64) (Vector, error) {
	var v Vector
	if len(values) != Size {
		return v, fmt.Errorf("got %d values: %w", len(values), ErrDimension)
	}
	copy(v[:], values)
	return v, nil
}

// Names returns the canonical column names in order.
func Names() []string {
	out := make([]string, Size)
	copy(out, names[:])
	return out
}

// Slice returns the values as a new slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Size)
	copy(out, v[:])
	return out
}

// Fields returns the named form of the vector. Integer columns are truncated.
func (v Vector) Fields() Fields {
	return Fields{
		Pregnancies:              int(v[Pregnancies]),
		Glucose:                  v[Glucose],
		BloodPressure:            v[BloodPressure],
		SkinThickness:            v[SkinThickness],
		Insulin:                  v[Insulin],
		BMI:                      v[BMI],
		DiabetesPedigreeFunction: v[DiabetesPedigreeFunction],
		Age:                      int(v[Age]),
	}
}

// MarshalJSON encodes the vector as an object keyed by column name, with
// the keys in column order.
func (v Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v[i])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", n, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either an array of 8 numbers or an object keyed by
// column name. Objects must carry every column.
func (v *Vector) UnmarshalJSON(b []byte) error {
	var arr []float64
	if err := json.Unmarshal(b, &arr); err == nil {
		parsed, err := FromSlice(arr)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decode feature vector: %w", err)
	}
	var out Vector
	for i, n := range names {
		val, ok := m[n]
		if !ok {
			return fmt.Errorf("missing column %s: %w", n, ErrDimension)
		}
		out[i] = val
	}
	*v = out
	return nil
}
