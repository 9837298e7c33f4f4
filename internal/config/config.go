// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a .env file, an optional YAML file and DIARISK_ env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

// Predictor modes.
const (
	PredictorLocal  = "local"
	PredictorRemote = "remote"
	PredictorNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the log handler to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ModelPath and ScalerPath locate the persisted classifier and scaler.
	ModelPath  string `koanf:"model_path"`
	ScalerPath string `koanf:"scaler_path"`

	// Predictor selects where classification happens: local, remote or none.
	Predictor string `koanf:"predictor"`

	// RemoteURL is the base URL of the inference service used in remote mode.
	RemoteURL string `koanf:"remote_url"`

	// RemoteTimeoutMS bounds a single remote inference call.
	RemoteTimeoutMS int `koanf:"remote_timeout_ms"`

	// SkinFormula selects the skin thickness estimate: linear or bands.
	SkinFormula string `koanf:"skin_formula"`

	// Language is the default label language (en, hi).
	Language string `koanf:"language"`

	// RateLimitRPS and RateLimitBurst configure the API token bucket. Zero RPS disables it.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		ModelPath:       "diabetes_model.yaml",
		ScalerPath:      "scaler.yaml",
		Predictor:       PredictorLocal,
		RemoteTimeoutMS: 2000,
		SkinFormula:     "linear",
		Language:        "en",
		RateLimitRPS:    50,
		RateLimitBurst:  100,
	}
}
