// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/diarisk/internal/domain/estimate"
	"github.com/okian/diarisk/pkg/metrics"
)

// EstimateHandler exposes the individual estimation formulas.
//
//	GET /estimate/bmi?weight_kg=&height_cm=
//	GET /estimate/bp?age=&bmi=&smoker=&active=&stress=
//	GET /estimate/bp-category?systolic=&diastolic=
//	GET /estimate/skin?bmi=&age=[&formula=linear|bands]
//	GET /estimate/insulin?glucose=&bmi=&pregnancies=
//	GET /estimate/glucose?age=&bmi=&insulin=&active=
//	GET /estimate/pedigree?relatives=Parent,Sibling
type EstimateHandler struct {
	skin estimate.SkinFormula
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(skin estimate.SkinFormula) *EstimateHandler {
	return &EstimateHandler{skin: skin}
}

type bpResponse struct {
	Systolic  float64             `json:"systolic"`
	Diastolic float64             `json:"diastolic"`
	Mean      float64             `json:"mean"`
	Category  estimate.BPCategory `json:"category"`
}

// HandleEstimate handles GET /estimate/{name}.
func (h *EstimateHandler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/estimate/")
	q := params{values: r.URL.Query()}

	var body any
	switch name {
	case "bmi":
		weight, height := q.float("weight_kg"), q.float("height_cm")
		body = map[string]float64{"bmi": estimate.BMI(weight, height)}
	case "bp":
		bp := estimate.EstimateBP(q.float("age"), q.float("bmi"), estimate.Lifestyle{
			Smoker: q.boolean("smoker", false),
			Active: q.boolean("active", true),
			Stress: q.boolean("stress", false),
		})
		body = bpResponse{Systolic: bp.Systolic, Diastolic: bp.Diastolic, Mean: bp.Mean(), Category: bp.Category()}
	case "bp-category":
		sys, dia := q.float("systolic"), q.float("diastolic")
		body = map[string]estimate.BPCategory{"category": estimate.InterpretBP(sys, dia)}
	case "skin":
		formula := h.skin
		if f := q.values.Get("formula"); f != "" {
			parsed, err := estimate.ParseSkinFormula(f)
			if err != nil {
				q.fail("formula", err)
			}
			formula = parsed
		}
		body = map[string]any{"skin_thickness": formula.Estimate(q.float("bmi"), q.float("age")), "formula": formula}
	case "insulin":
		body = map[string]float64{"insulin": estimate.EstimateInsulin(q.float("glucose"), q.float("bmi"), q.integer("pregnancies"))}
	case "glucose":
		body = map[string]float64{"glucose": estimate.EstimateGlucose(
			q.float("age"), q.float("bmi"), q.float("insulin"), q.boolean("active", true))}
	case "pedigree":
		rels := q.relatives("relatives")
		body = map[string]float64{"pedigree": estimate.PedigreeScore(len(rels), estimate.RelativeWeights(rels))}
	default:
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: %q", ErrUnknownEstimate, name))
		return
	}

	if q.err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", q.err)
		return
	}
	metrics.RecordEstimate(name)
	writeJSON(w, http.StatusOK, body)
}

var errMissing = errors.New("required")

// params reads query values, keeping the first error.
type params struct {
	values url.Values
	err    error
}

func (p *params) fail(name string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s: %w", ErrBadRequest, name, err)
	}
}

func (p *params) float(name string) float64 {
	raw := p.values.Get(name)
	if raw == "" {
		p.fail(name, errMissing)
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(name, err)
	}
	return v
}

func (p *params) integer(name string) int {
	raw := p.values.Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, err)
	}
	return v
}

func (p *params) boolean(name string, def bool) bool {
	raw := p.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, err)
		return def
	}
	return v
}

func (p *params) relatives(name string) []estimate.Relative {
	var out []estimate.Relative
	for _, raw := range p.values[name] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			rel, err := estimate.ParseRelative(part)
			if err != nil {
				p.fail(name, err)
				return nil
			}
			out = append(out, rel)
		}
	}
	return out
}
