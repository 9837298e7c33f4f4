// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/internal/domain/i18n"
)

// LabelsHandler serves the display strings for a language.
type LabelsHandler struct {
	lang i18n.Lang
}

// NewLabelsHandler creates a new labels handler.
func NewLabelsHandler(lang i18n.Lang) *LabelsHandler {
	return &LabelsHandler{lang: lang}
}

type labelsResponse struct {
	Lang      i18n.Lang           `json:"lang"`
	Labels    map[string]string   `json:"labels"`
	NextSteps []string            `json:"next_steps"`
	Relatives []estimate.Relative `json:"relatives"`
}

// HandleLabels handles GET /labels?lang=en|hi.
func (h *LabelsHandler) HandleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lang := h.lang
	if q := r.URL.Query().Get("lang"); q != "" {
		lang = i18n.ParseLang(q)
	}
	writeJSON(w, http.StatusOK, labelsResponse{
		Lang:      lang,
		Labels:    i18n.Table(lang),
		NextSteps: i18n.NextSteps(lang),
		Relatives: estimate.Relatives(),
	})
}
