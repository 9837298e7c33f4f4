package app

import (
	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPredictor enables prediction. Without it Assess only derives.
func WithPredictor(p predict.Predictor) Option {
	return func(s *Service) {
		s.predictor = p
	}
}

// WithSkinFormula selects the skin thickness estimate.
func WithSkinFormula(f estimate.SkinFormula) Option {
	return func(s *Service) {
		if f != "" {
			s.skin = f
		}
	}
}
