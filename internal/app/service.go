// Package app runs the assessment flow: validate a form, derive the missing
// measurements, assemble the feature vector and, when a predictor is
// configured, classify it.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
	"github.com/okian/diarisk/pkg/metrics"
)

// baselineGlucose is the glucose every insulin estimate is taken at, whether
// or not the form carries a measured glucose.
const baselineGlucose = 100

// Service implements the assessment operations used by the HTTP API and CLI.
type Service struct {
	predictor predict.Predictor
	skin      estimate.SkinFormula
	logger    logger.Logger
	startedAt time.Time

	derived     atomic.Int64
	assessed    atomic.Int64
	predictions atomic.Int64
	diabetic    atomic.Int64
	disabled    atomic.Int64
	failures    atomic.Int64
	invalid     atomic.Int64
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		skin:      estimate.SkinLinear,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("app")
	}
	metrics.UpdatePredictorAvailable(s.PredictionEnabled())
	return s
}

// PredictionEnabled reports whether a predictor is configured.
func (s *Service) PredictionEnabled() bool {
	return s.predictor != nil
}

// Derive validates f and fills in every missing measurement. It never predicts.
func (s *Service) Derive(ctx context.Context, f Form) (Assessment, error) {
	a, err := s.derive(ctx, f)
	if err != nil {
		return Assessment{}, err
	}
	s.derived.Add(1)
	metrics.RecordAssessment("derive")
	return a, nil
}

// Assess derives f and, when prediction is enabled, classifies the vector.
// With prediction disabled the derived values are still returned, with a nil Outcome.
func (s *Service) Assess(ctx context.Context, f Form) (Assessment, error) {
	a, err := s.derive(ctx, f)
	if err != nil {
		return Assessment{}, err
	}
	s.assessed.Add(1)
	metrics.RecordAssessment("assess")

	if !a.PredictionEnabled {
		s.disabled.Add(1)
		metrics.RecordPredictionDisabled()
		s.logger.Debug(ctx, "prediction disabled, returning derived values only")
		return a, nil
	}

	out, err := s.Predict(ctx, a.Vector)
	if err != nil {
		return Assessment{}, err
	}
	a.Outcome = &out
	return a, nil
}

// Predict classifies a raw feature vector.
func (s *Service) Predict(ctx context.Context, v features.Vector) (predict.Outcome, error) {
	if s.predictor == nil {
		s.disabled.Add(1)
		metrics.RecordPredictionDisabled()
		return predict.Outcome{}, predict.ErrPredictionDisabled
	}

	start := time.Now()
	res, err := s.predictor.Predict(ctx, v)
	metrics.RecordPredictionLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordPredictionError(errorKind(err))
		s.logger.Error(ctx, "prediction failed", logger.Error(err))
		return predict.Outcome{}, fmt.Errorf("predict: %w", err)
	}
	if err := res.Validate(); err != nil {
		s.failures.Add(1)
		metrics.RecordPredictionError(errorKind(err))
		return predict.Outcome{}, err
	}

	out := predict.NewOutcome(res)
	s.predictions.Add(1)
	if res.Label == predict.Diabetic {
		s.diabetic.Add(1)
	}
	metrics.RecordPrediction(out.Class)
	s.logger.Debug(ctx, "prediction",
		logger.String("class", out.Class),
		logger.Float64("probability", res.Probability),
	)
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"predictionEnabled":  s.PredictionEnabled(),
		"skinFormula":        string(s.skin),
		"uptimeSeconds":      int64(time.Since(s.startedAt).Seconds()),
		"derived":            s.derived.Load(),
		"assessed":           s.assessed.Load(),
		"predictions":        s.predictions.Load(),
		"diabeticPredicted":  s.diabetic.Load(),
		"predictionDisabled": s.disabled.Load(),
		"predictionFailures": s.failures.Load(),
		"invalidForms":       s.invalid.Load(),
	}
}

func (s *Service) derive(ctx context.Context, f Form) (Assessment, error) {
	f.Relatives = slices.Clone(f.Relatives)
	if err := f.Validate(); err != nil {
		s.invalid.Add(1)
		var fe *FieldError
		if errors.As(err, &fe) {
			metrics.RecordInvalidInput(fe.Field)
		}
		return Assessment{}, err
	}

	var est [features.Size]bool
	life, glucoseActive := f.Lifestyle.resolve()
	age := float64(f.Age)

	var bmi float64
	if f.BMI != nil {
		bmi = *f.BMI
	} else {
		bmi = estimate.BMI(*f.WeightKG, *f.HeightCM)
		est[features.BMI] = true
	}

	var skin float64
	if f.SkinThickness != nil {
		skin = *f.SkinThickness
	} else {
		skin = s.skin.Estimate(bmi, age)
		est[features.SkinThickness] = true
	}

	var insulin float64
	if f.Insulin != nil {
		insulin = *f.Insulin
	} else {
		insulin = estimate.EstimateInsulin(baselineGlucose, bmi, f.Pregnancies)
		est[features.Insulin] = true
	}

	var glucose float64
	if f.Glucose != nil {
		glucose = *f.Glucose
	} else {
		glucose = estimate.EstimateGlucose(age, bmi, insulin, glucoseActive)
		est[features.Glucose] = true
	}

	var bp float64
	var reading *BPReading
	switch {
	case f.BloodPressure != nil:
		bp = *f.BloodPressure
	case f.Systolic != nil:
		pair := estimate.BloodPressure{Systolic: *f.Systolic, Diastolic: *f.Diastolic}
		bp = pair.Mean()
		reading = &BPReading{Systolic: pair.Systolic, Diastolic: pair.Diastolic, Category: pair.Category()}
	default:
		pair := estimate.EstimateBP(age, bmi, life)
		bp = pair.Mean()
		reading = &BPReading{Systolic: pair.Systolic, Diastolic: pair.Diastolic, Category: pair.Category(), Estimated: true}
		est[features.BloodPressure] = true
	}
	if reading != nil {
		metrics.RecordBPCategory(reading.Category.String())
	}

	var pedigree float64
	if f.Pedigree != nil {
		pedigree = *f.Pedigree
	} else {
		pedigree = estimate.PedigreeScore(len(f.Relatives), estimate.RelativeWeights(f.Relatives))
		est[features.DiabetesPedigreeFunction] = true
	}

	v := features.New(features.Fields{
		Pregnancies:              f.Pregnancies,
		Glucose:                  glucose,
		BloodPressure:            bp,
		SkinThickness:            skin,
		Insulin:                  insulin,
		BMI:                      bmi,
		DiabetesPedigreeFunction: pedigree,
		Age:                      f.Age,
	})

	a := Assessment{
		Values:            newValues(v, est),
		Vector:            v,
		BP:                reading,
		PredictionEnabled: s.PredictionEnabled(),
	}
	for _, name := range a.Estimated() {
		metrics.RecordEstimate(name)
	}
	s.logger.Debug(ctx, "form derived",
		logger.Any("vector", v.Slice()),
		logger.Any("estimated", a.Estimated()),
	)
	return a, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, predict.ErrInvalidResult):
		return "invalid_result"
	case errors.Is(err, predict.ErrInvalidArtifact):
		return "invalid_artifact"
	default:
		return "predictor"
	}
}
