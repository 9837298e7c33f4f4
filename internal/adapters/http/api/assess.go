// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/diarisk/internal/app"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/i18n"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

const maxBodyBytes = 64 << 10

// AssessHandler serves the form and vector endpoints.
type AssessHandler struct {
	deps   Dependencies
	lang   i18n.Lang
	logger logger.Logger
}

// NewAssessHandler creates a new assess handler.
func NewAssessHandler(deps Dependencies, lang i18n.Lang, l logger.Logger) *AssessHandler {
	return &AssessHandler{deps: deps, lang: lang, logger: l}
}

// assessResponse is an assessment plus localized presentation strings.
type assessResponse struct {
	app.Assessment
	Lang      i18n.Lang `json:"lang"`
	Message   string    `json:"message,omitempty"`
	NextSteps []string  `json:"next_steps,omitempty"`
	Warning   string    `json:"warning,omitempty"`
}

type predictRequest struct {
	Features *features.Vector `json:"features"`
}

type predictResponse struct {
	predict.Outcome
	Lang      i18n.Lang `json:"lang"`
	Message   string    `json:"message"`
	NextSteps []string  `json:"next_steps"`
}

// HandleAssess handles POST /assess: derive the form and predict when enabled.
func (h *AssessHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, true)
}

// HandleDerive handles POST /derive: derive the form without predicting.
func (h *AssessHandler) HandleDerive(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, false)
}

func (h *AssessHandler) handleForm(w http.ResponseWriter, r *http.Request, withPrediction bool) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var form app.Form
	if err := decodeBody(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	ctx := r.Context()
	derive := h.deps.Derive
	if withPrediction {
		derive = h.deps.Assess
	}
	a, err := derive(ctx, form)
	if err != nil {
		status, code := statusFor(err)
		if status >= statusInternalError {
			h.logger.Error(ctx, "assessment failed",
				logger.String("request_id", w.Header().Get(RequestIDHeader)),
				logger.Error(err),
			)
		}
		writeError(w, status, code, err)
		return
	}

	lang := h.language(r)
	resp := assessResponse{Assessment: a, Lang: lang}
	switch {
	case a.Outcome != nil:
		resp.Message = outcomeMessage(lang, *a.Outcome)
		resp.NextSteps = i18n.NextSteps(lang)
	case withPrediction && !a.PredictionEnabled:
		resp.Warning = i18n.Lookup(lang, i18n.KeyPredictionOff)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePredict handles POST /predict with a raw eight-feature vector.
func (h *AssessHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Features == nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing features", ErrBadRequest))
		return
	}

	out, err := h.deps.Predict(r.Context(), *req.Features)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	lang := h.language(r)
	writeJSON(w, http.StatusOK, predictResponse{
		Outcome:   out,
		Lang:      lang,
		Message:   outcomeMessage(lang, out),
		NextSteps: i18n.NextSteps(lang),
	})
}

func (h *AssessHandler) language(r *http.Request) i18n.Lang {
	if q := r.URL.Query().Get("lang"); q != "" {
		return i18n.ParseLang(q)
	}
	return h.lang
}

func outcomeMessage(lang i18n.Lang, out predict.Outcome) string {
	if out.Label == predict.Diabetic {
		return i18n.Lookup(lang, i18n.KeyDiabetic)
	}
	return i18n.Lookup(lang, i18n.KeyNonDiabetic)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
