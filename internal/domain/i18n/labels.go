// Package i18n holds the display strings for the supported languages.
package i18n

import "strings"

// Lang is a supported display language.
type Lang string

// Supported languages.
const (
	English Lang = "en"
	Hindi   Lang = "hi"
)

// Label keys.
const (
	KeyTitle             = "title"
	KeyPregnancies       = "pregnancies"
	KeyGlucose           = "glucose"
	KeyBloodPressure     = "blood_pressure"
	KeySkinThickness     = "skin_thickness"
	KeyInsulin           = "insulin"
	KeyBMI               = "bmi"
	KeyPedigree          = "pedigree"
	KeyAge               = "age"
	KeyBPCategory        = "bp_category"
	KeyEstimated         = "estimated"
	KeyInputSummary      = "input_summary"
	KeyPredictionResult  = "prediction_result"
	KeyRiskScore         = "risk_score"
	KeyDiabetic          = "diabetic"
	KeyNonDiabetic       = "non_diabetic"
	KeyPredictionOff     = "prediction_disabled"
	KeyArtifactsLoaded   = "artifacts_loaded"
	KeyArtifactsMissing  = "artifacts_missing"
	KeyMaleNoPregnancies = "male_no_pregnancies"
	KeyNextSteps         = "next_steps"
	KeyStepDiet          = "step_diet"
	KeyStepExercise      = "step_exercise"
	KeyStepCheckups      = "step_checkups"
	KeyStepMonitor       = "step_monitor"
)

var tables = map[Lang]map[string]string{
	English: {
		KeyTitle:             "Diabetes Risk Prediction",
		KeyPregnancies:       "Pregnancies",
		KeyGlucose:           "Glucose (mg/dL)",
		KeyBloodPressure:     "Blood Pressure (mmHg)",
		KeySkinThickness:     "Skin Thickness (mm)",
		KeyInsulin:           "Insulin (mu U/ml)",
		KeyBMI:               "BMI (kg/m²)",
		KeyPedigree:          "Diabetes Pedigree Function",
		KeyAge:               "Age (years)",
		KeyBPCategory:        "BP Category",
		KeyEstimated:         "estimated",
		KeyInputSummary:      "Input Summary",
		KeyPredictionResult:  "Prediction Result",
		KeyRiskScore:         "Risk Score",
		KeyDiabetic:          "Prediction: Person is Diabetic.",
		KeyNonDiabetic:       "Prediction: Person is Non-Diabetic.",
		KeyPredictionOff:     "Prediction disabled: Model or scaler not loaded.",
		KeyArtifactsLoaded:   "Model and scaler loaded successfully!",
		KeyArtifactsMissing:  "Model or scaler file not found. Please check the files.",
		KeyMaleNoPregnancies: "Pregnancy count is automatically set to 0 for male.",
		KeyNextSteps:         "Next Steps",
		KeyStepDiet:          "Maintain a balanced diet and healthy weight",
		KeyStepExercise:      "Exercise regularly",
		KeyStepCheckups:      "Schedule regular health checkups",
		KeyStepMonitor:       "Monitor blood sugar if at risk",
	},
	Hindi: {
		KeyTitle:             "मधुमेह जोखिम पूर्वानुमान",
		KeyPregnancies:       "गर्भधारण की संख्या",
		KeyGlucose:           "ग्लूकोज़ (mg/dL)",
		KeyBloodPressure:     "रक्तचाप (mmHg)",
		KeySkinThickness:     "त्वचा की मोटाई (mm)",
		KeyInsulin:           "इंसुलिन (mu U/ml)",
		KeyBMI:               "बीएमआई (kg/m²)",
		KeyPedigree:          "मधुमेह वंशावली कार्य",
		KeyAge:               "आयु (वर्ष)",
		KeyBPCategory:        "रक्तचाप श्रेणी",
		KeyEstimated:         "अनुमानित",
		KeyInputSummary:      "इनपुट सारांश",
		KeyPredictionResult:  "पूर्वानुमान परिणाम",
		KeyRiskScore:         "जोखिम स्कोर",
		KeyDiabetic:          "पूर्वानुमान: व्यक्ति मधुमेह से ग्रस्त है।",
		KeyNonDiabetic:       "पूर्वानुमान: व्यक्ति मधुमेह से ग्रस्त नहीं है।",
		KeyPredictionOff:     "पूर्वानुमान अक्षम: मॉडल या स्केलर लोड नहीं हुआ।",
		KeyArtifactsLoaded:   "मॉडल और स्केलर सफलतापूर्वक लोड हुए!",
		KeyArtifactsMissing:  "मॉडल या स्केलर फ़ाइल नहीं मिली।",
		KeyMaleNoPregnancies: "पुरुष के लिए गर्भधारण संख्या स्वतः 0 है।",
		KeyNextSteps:         "अगले कदम",
		KeyStepDiet:          "संतुलित आहार और स्वस्थ वजन बनाए रखें",
		KeyStepExercise:      "नियमित व्यायाम करें",
		KeyStepCheckups:      "नियमित स्वास्थ्य जांच करवाएं",
		KeyStepMonitor:       "जोखिम होने पर रक्त शर्करा की निगरानी करें",
	},
}

// ParseLang maps a language tag or name to a Lang, defaulting to English.
func ParseLang(s string) Lang {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hi", "hindi", "हिंदी":
		return Hindi
	default:
		return English
	}
}

// Lookup returns the string for key in lang, falling back to English and
// then to the key itself.
func Lookup(lang Lang, key string) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[English][key]; ok {
		return s
	}
	return key
}

// Table returns a copy of the full table for lang.
func Table(lang Lang) map[string]string {
	out := make(map[string]string, len(tables[English]))
	for k := range tables[English] {
		out[k] = Lookup(lang, k)
	}
	return out
}

// NextSteps returns the advice shown after a prediction.
func NextSteps(lang Lang) []string {
	return []string{
		Lookup(lang, KeyStepDiet),
		Lookup(lang, KeyStepExercise),
		Lookup(lang, KeyStepCheckups),
		Lookup(lang, KeyStepMonitor),
	}
}
