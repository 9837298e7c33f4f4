// Package artifacts loads the persisted scaler and classifier.
//
// Both artifacts are YAML (or JSON) documents:
//
//	# scaler
//	mean:  [3.8, 120.9, 69.1, 20.5, 79.8, 32.0, 0.47, 33.2]
//	scale: [3.4, 32.0, 19.4, 16.0, 115.2, 7.9, 0.33, 11.8]
//
//	# model
//	kind: logistic
//	features: [Pregnancies, Glucose, BloodPressure, SkinThickness, Insulin, BMI, DiabetesPedigreeFunction, Age]
//	coefficients: [...]
//	intercept: -0.87
//	threshold: 0.5
//
// kind and features are optional; when present they must match.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

// KindLogistic is the only classifier kind understood locally.
const KindLogistic = "logistic"

// Set is a loaded scaler and classifier pair.
type Set struct {
	Scaler predict.StandardScaler
	Model  predict.LogisticModel
}

// Predictor wires the pair into a local prediction pipeline.
func (s *Set) Predictor() (*predict.Pipeline, error) {
	return predict.NewPipeline(s.Scaler, s.Model)
}

// Loader reads artifacts from the filesystem.
type Loader struct {
	logger logger.Logger
}

// NewLoader constructs a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads both artifacts. Either one missing yields ErrArtifactNotFound.
func (l *Loader) Load(ctx context.Context, modelPath, scalerPath string) (*Set, error) {
	scaler, err := l.LoadScaler(ctx, scalerPath)
	if err != nil {
		return nil, err
	}
	model, err := l.LoadModel(ctx, modelPath)
	if err != nil {
		return nil, err
	}
	l.log().Info(ctx, "artifacts loaded",
		logger.String("model", modelPath),
		logger.String("scaler", scalerPath),
		logger.Float64("threshold", model.Threshold),
	)
	return &Set{Scaler: scaler, Model: model}, nil
}

// LoadScaler reads and validates a standard scaler.
func (l *Loader) LoadScaler(ctx context.Context, path string) (predict.StandardScaler, error) {
	var s predict.StandardScaler
	k, err := read(path)
	if err != nil {
		return s, err
	}
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return s, fmt.Errorf("%s: %w: %w", path, predict.ErrInvalidArtifact, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	l.log().Debug(ctx, "scaler loaded", logger.String("path", path))
	return s, nil
}

// LoadModel reads and validates a logistic classifier.
func (l *Loader) LoadModel(ctx context.Context, path string) (predict.LogisticModel, error) {
	var m predict.LogisticModel
	k, err := read(path)
	if err != nil {
		return m, err
	}
	if kind := k.String("kind"); kind != "" && kind != KindLogistic {
		return m, fmt.Errorf("%s: unsupported model kind %q: %w", path, kind, predict.ErrInvalidArtifact)
	}
	if names := k.Strings("features"); len(names) > 0 && !slices.Equal(names, features.Names()) {
		return m, fmt.Errorf("%s: feature order %v does not match %v: %w",
			path, names, features.Names(), predict.ErrInvalidArtifact)
	}
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return m, fmt.Errorf("%s: %w: %w", path, predict.ErrInvalidArtifact, err)
	}
	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("%s: %w", path, err)
	}
	l.log().Debug(ctx, "model loaded", logger.String("path", path))
	return m, nil
}

func (l *Loader) log() logger.Logger {
	if l.logger == nil {
		l.logger = logger.Named("artifacts")
	}
	return l.logger
}

func read(path string) (*koanf.Koanf, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, predict.ErrInvalidArtifact, err)
	}
	return k, nil
}
