package predict

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/diarisk/internal/domain/features"
)

const defaultThreshold = 0.5

// StandardScaler standardizes each column as (x - mean) / scale. A zero
// scale leaves the centred value unchanged, matching how the scaler was fit.
type StandardScaler struct {
	Mean  []float64 `koanf:"mean" json:"mean"`
	Scale []float64 `koanf:"scale" json:"scale"`
}

// Validate checks the fitted parameters have the right shape.
func (s StandardScaler) Validate() error {
	if len(s.Mean) != features.Size || len(s.Scale) != features.Size {
		return fmt.Errorf("scaler needs %d means and scales, got %d and %d: %w",
			features.Size, len(s.Mean), len(s.Scale), ErrInvalidArtifact)
	}
	return nil
}

// Transform implements Scaler.
func (s StandardScaler) Transform(v features.Vector) (features.Vector, error) {
	if err := s.Validate(); err != nil {
		return features.Vector{}, err
	}
	var out features.Vector
	for i := range v {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v[i] - s.Mean[i]) / scale
	}
	return out, nil
}

// LogisticModel is a fitted binary logistic regression.
type LogisticModel struct {
	Coefficients []float64 `koanf:"coefficients" json:"coefficients"`
	Intercept    float64   `koanf:"intercept" json:"intercept"`
	// Threshold is the probability at or above which label 1 is returned.
	// Zero means 0.5.
	Threshold float64 `koanf:"threshold" json:"threshold"`
}

// Validate checks the fitted parameters have the right shape.
func (m LogisticModel) Validate() error {
	if len(m.Coefficients) != features.Size {
		return fmt.Errorf("model needs %d coefficients, got %d: %w",
			features.Size, len(m.Coefficients), ErrInvalidArtifact)
	}
	if m.Threshold < 0 || m.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside [0, 1): %w", m.Threshold, ErrInvalidArtifact)
	}
	return nil
}

// Classify implements Classifier.
func (m LogisticModel) Classify(ctx context.Context, scaled features.Vector) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	z := m.Intercept
	for i, x := range scaled {
		z += m.Coefficients[i] * x
	}
	p := 1 / (1 + math.Exp(-z))

	threshold := m.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}
	label := NonDiabetic
	if p >= threshold {
		label = Diabetic
	}
	return Result{Label: label, Probability: p}, nil
}
