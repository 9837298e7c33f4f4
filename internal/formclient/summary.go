package formclient

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/i18n"
)

var columnKeys = [features.Size]string{
	features.Pregnancies:              i18n.KeyPregnancies,
	features.Glucose:                  i18n.KeyGlucose,
	features.BloodPressure:            i18n.KeyBloodPressure,
	features.SkinThickness:            i18n.KeySkinThickness,
	features.Insulin:                  i18n.KeyInsulin,
	features.BMI:                      i18n.KeyBMI,
	features.DiabetesPedigreeFunction: i18n.KeyPedigree,
	features.Age:                      i18n.KeyAge,
}

// PrintSummary writes the input summary and prediction result for r.
func PrintSummary(w io.Writer, r Result) error {
	lang := r.Assessment.Lang
	if lang == "" {
		lang = i18n.English
	}
	label := func(key string) string { return i18n.Lookup(lang, key) }

	fmt.Fprintf(w, "== %s ==\n", r.File)
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "error: %v\n\n", r.Err)
		return err
	}
	a := r.Assessment

	fmt.Fprintln(w, label(i18n.KeyInputSummary))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, v := range a.Values {
		name := v.Name
		if i < features.Size {
			name = label(columnKeys[i])
		}
		line := "  " + name + "\t" + strconv.FormatFloat(v.Value, 'f', -1, 64)
		if v.Unit != "" {
			line += " " + v.Unit
		}
		if v.Estimated {
			line += "\t(" + label(i18n.KeyEstimated) + ")"
		}
		fmt.Fprintln(tw, line)
	}
	if a.BP != nil {
		fmt.Fprintf(tw, "  %s\t%s (%g/%g)\n", label(i18n.KeyBPCategory), a.BP.Category, a.BP.Systolic, a.BP.Diastolic)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, label(i18n.KeyPredictionResult))
	if a.Outcome == nil {
		_, err := fmt.Fprintf(w, "  %s\n\n", a.Warning)
		return err
	}
	fmt.Fprintf(w, "  %s\n", a.Message)
	fmt.Fprintf(w, "  %s: %s %s\n", label(i18n.KeyRiskScore), a.Outcome.RiskScore, progressBar(a.Outcome.Progress))
	if len(a.NextSteps) > 0 {
		fmt.Fprintln(w, label(i18n.KeyNextSteps))
		for _, s := range a.NextSteps {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// progressBar renders a 0..100 progress value as a fixed-width bar.
func progressBar(progress int) string {
	progress = max(0, min(progress, 100))
	filled := progress * progressWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}
