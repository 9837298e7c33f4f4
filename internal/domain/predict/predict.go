// Package predict defines the contract with the pre-fit diabetes classifier.
//
// The classifier and its feature scaler are opaque artifacts fit elsewhere.
// Callers only see a Predictor: given an eight-feature vector it returns a
// class label and the probability of label 1.
package predict

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/diarisk/internal/domain/features"
)

// Class labels.
const (
	NonDiabetic = 0
	Diabetic    = 1
)

// Result is the classifier output for one vector.
type Result struct {
	// Label is 1 for diabetic, 0 otherwise.
	Label int `json:"label"`
	// Probability is the estimated probability of label 1.
	Probability float64 `json:"probability"`
}

// Validate checks the result against the collaborator contract.
func (r Result) Validate() error {
	if r.Label != NonDiabetic && r.Label != Diabetic {
		return fmt.Errorf("label %d: %w", r.Label, ErrInvalidResult)
	}
	if math.IsNaN(r.Probability) || r.Probability < 0 || r.Probability > 1 {
		return fmt.Errorf("probability %v: %w", r.Probability, ErrInvalidResult)
	}
	return nil
}

// Predictor estimates diabetes risk from a raw (unscaled) feature vector.
type Predictor interface {
	Predict(ctx context.Context, v features.Vector) (Result, error)
}

// Scaler applies the pre-fit feature transform.
type Scaler interface {
	Transform(v features.Vector) (features.Vector, error)
}

// Classifier labels an already scaled vector.
type Classifier interface {
	Classify(ctx context.Context, scaled features.Vector) (Result, error)
}

// Pipeline scales a raw vector and hands it to a classifier.
type Pipeline struct {
	scaler     Scaler
	classifier Classifier
}

// NewPipeline builds a Predictor from its two artifacts. Both are required.
func NewPipeline(scaler Scaler, classifier Classifier) (*Pipeline, error) {
	if scaler == nil || classifier == nil {
		return nil, ErrPredictionDisabled
	}
	return &Pipeline{scaler: scaler, classifier: classifier}, nil
}

// Predict scales v and classifies it.
func (p *Pipeline) Predict(ctx context.Context, v features.Vector) (Result, error) {
	scaled, err := p.scaler.Transform(v)
	if err != nil {
		return Result{}, fmt.Errorf("scale features: %w", err)
	}
	res, err := p.classifier.Classify(ctx, scaled)
	if err != nil {
		return Result{}, fmt.Errorf("classify: %w", err)
	}
	if err := res.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Func adapts a function to Predictor. Useful for stubs.
type Func func(ctx context.Context, v features.Vector) (Result, error)

// Predict calls f.
func (f Func) Predict(ctx context.Context, v features.Vector) (Result, error) {
	return f(ctx, v)
}

// Fixed returns a Predictor that always yields the given result.
func Fixed(label int, probability float64) Predictor {
	return Func(func(context.Context, features.Vector) (Result, error) {
		return Result{Label: label, Probability: probability}, nil
	})
}
