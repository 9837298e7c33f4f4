package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/diarisk/internal/adapters/artifacts"
	"github.com/okian/diarisk/internal/app"
	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/i18n"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

// ErrServer is returned when the server answers with a non-200 status.
var ErrServer = errors.New("server rejected form")

// Assessment mirrors the body of POST /assess.
type Assessment struct {
	app.Assessment
	Lang      i18n.Lang `json:"lang"`
	Message   string    `json:"message,omitempty"`
	NextSteps []string  `json:"next_steps,omitempty"`
	Warning   string    `json:"warning,omitempty"`
}

// Evaluator turns a form into an Assessment.
type Evaluator interface {
	Evaluate(ctx context.Context, form app.Form) (Assessment, error)
}

// Local evaluates forms in-process.
type Local struct {
	svc  *app.Service
	lang i18n.Lang
}

// NewLocal builds an in-process evaluator. Missing artifacts disable
// prediction with a warning; malformed ones are an error.
func NewLocal(ctx context.Context, cfg *Config) (*Local, error) {
	skin, err := estimate.ParseSkinFormula(cfg.Skin)
	if err != nil {
		return nil, err
	}
	opts := []app.Option{app.WithSkinFormula(skin)}

	set, err := artifacts.NewLoader().Load(ctx, cfg.ModelPath, cfg.ScalerPath)
	switch {
	case errors.Is(err, artifacts.ErrArtifactNotFound):
		logger.Get().Warn(ctx, "artifacts not found, prediction disabled", logger.Error(err))
	case err != nil:
		return nil, err
	default:
		p, err := set.Predictor()
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithPredictor(p))
	}
	return &Local{svc: app.New(opts...), lang: i18n.ParseLang(cfg.Lang)}, nil
}

// Evaluate derives the form and predicts when enabled.
func (l *Local) Evaluate(ctx context.Context, form app.Form) (Assessment, error) {
	a, err := l.svc.Assess(ctx, form)
	if err != nil {
		return Assessment{}, err
	}
	out := Assessment{Assessment: a, Lang: l.lang}
	if a.Outcome != nil {
		key := i18n.KeyNonDiabetic
		if a.Outcome.Label == predict.Diabetic {
			key = i18n.KeyDiabetic
		}
		out.Message = i18n.Lookup(l.lang, key)
		out.NextSteps = i18n.NextSteps(l.lang)
	} else {
		out.Warning = i18n.Lookup(l.lang, i18n.KeyPredictionOff)
	}
	return out, nil
}

// Remote posts forms to a running server.
type Remote struct {
	url    string
	lang   string
	runID  string
	client *http.Client
}

// NewRemote creates a client for the server at baseURL. runID is sent as
// X-Request-ID on every request.
func NewRemote(cfg *Config, runID string) *Remote {
	return &Remote{
		url:    strings.TrimRight(cfg.ServerURL, "/") + "/assess",
		lang:   cfg.Lang,
		runID:  runID,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type serverError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// Evaluate posts the form to /assess.
func (r *Remote) Evaluate(ctx context.Context, form app.Form) (Assessment, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to marshal form: %w", err)
	}
	target := r.url
	if r.lang != "" {
		target += "?lang=" + r.lang
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", r.runID)

	resp, err := r.client.Do(req)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var se serverError
		if json.Unmarshal(data, &se) == nil && se.Code != "" {
			return Assessment{}, fmt.Errorf("%w: %d %s: %s", ErrServer, resp.StatusCode, se.Code, se.Message)
		}
		return Assessment{}, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}

	var out Assessment
	if err := json.Unmarshal(data, &out); err != nil {
		return Assessment{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
