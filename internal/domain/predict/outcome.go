package predict

import (
	"math"
	"strconv"
	"strings"
)

// Class names surfaced to users.
const (
	ClassDiabetic    = "Diabetic"
	ClassNonDiabetic = "Non-Diabetic"
)

const percent = 100

// Outcome is a Result prepared for display.
type Outcome struct {
	Label       int     `json:"label"`
	Class       string  `json:"class"`
	Probability float64 `json:"probability"`
	// RiskScore is the probability as a percentage rounded to 2 decimals,
	// always carrying at least one decimal place ("12.0%").
	RiskScore string `json:"risk_score"`
	// Progress is the whole-number percentage for a progress bar, capped at 100.
	Progress int `json:"progress"`
}

// NewOutcome converts a classifier result for display.
func NewOutcome(r Result) Outcome {
	class := ClassNonDiabetic
	if r.Label == Diabetic {
		class = ClassDiabetic
	}
	return Outcome{
		Label:       r.Label,
		Class:       class,
		Probability: r.Probability,
		RiskScore:   FormatRisk(r.Probability),
		Progress:    min(int(r.Probability*percent), percent),
	}
}

// FormatRisk renders a probability as a percentage string.
func FormatRisk(probability float64) string {
	pct := math.Round(probability*percent*percent) / percent
	s := strconv.FormatFloat(pct, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s + "%"
}
