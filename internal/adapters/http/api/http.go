// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/diarisk/internal/adapters/remote"
	"github.com/okian/diarisk/internal/app"
	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/i18n"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Derive(ctx context.Context, f app.Form) (app.Assessment, error)
	Assess(ctx context.Context, f app.Form) (app.Assessment, error)
	Predict(ctx context.Context, v features.Vector) (predict.Outcome, error)
	PredictionEnabled() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	assessHandler   *AssessHandler
	estimateHandler *EstimateHandler
	labelsHandler   *LabelsHandler

	limiter *rate.Limiter
	lang    i18n.Lang
	skin    estimate.SkinFormula
	logger  logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit installs a shared token bucket on the business endpoints.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithLanguage sets the label language used when a request does not ask for one.
func WithLanguage(lang i18n.Lang) Option {
	return func(s *Server) {
		if lang != "" {
			s.lang = lang
		}
	}
}

// WithSkinFormula sets the formula served by GET /estimate/skin.
func WithSkinFormula(f estimate.SkinFormula) Option {
	return func(s *Server) {
		if f != "" {
			s.skin = f
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		lang: i18n.English,
		skin: estimate.SkinLinear,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.assessHandler = NewAssessHandler(deps, s.lang, s.logger)
	s.estimateHandler = NewEstimateHandler(s.skin)
	s.labelsHandler = NewLabelsHandler(s.lang)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/labels", MetricsMiddleware(s.labelsHandler.HandleLabels, "labels"))

	mux.HandleFunc("/assess", s.wrap(s.assessHandler.HandleAssess, "assess"))
	mux.HandleFunc("/derive", s.wrap(s.assessHandler.HandleDerive, "derive"))
	mux.HandleFunc("/predict", s.wrap(s.assessHandler.HandlePredict, "predict"))
	mux.HandleFunc("/estimate/", s.wrap(s.estimateHandler.HandleEstimate, "estimate"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(RequestIDMiddleware(RateLimitMiddleware(h, s.limiter, endpoint)), endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var fe *app.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}
	writeJSON(w, status, resp)
}

// statusFor maps service errors to HTTP status and an error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidForm):
		return http.StatusUnprocessableEntity, "invalid_form"
	case errors.Is(err, ErrBadRequest), errors.Is(err, features.ErrDimension):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, predict.ErrPredictionDisabled):
		return http.StatusServiceUnavailable, "prediction_disabled"
	case errors.Is(err, remote.ErrUnavailable):
		return http.StatusServiceUnavailable, "predictor_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, remote.ErrRemote):
		return http.StatusBadGateway, "predictor_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
