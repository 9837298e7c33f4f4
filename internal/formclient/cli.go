package formclient

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/diarisk/pkg/logger"
)

// SetupLogging initializes the global logger on stderr, and additionally on
// logFile when one is given. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	if err := logger.Init(logger.WithWriter(out)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}
	return closer, nil
}

// ShowHelp prints usage information for the assess tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Diabetes Risk Assessment Tool
=============================

Evaluates one or more patient form files and prints the derived inputs and
the prediction result.

Usage:
  go run ./cmd/assess [options] form.yaml [form2.json ...]

Options:
  -server string
        Evaluate against a running server instead of in-process
  -model string
        Model artifact for in-process runs (default "diabetes_model.yaml")
  -scaler string
        Scaler artifact for in-process runs (default "scaler.yaml")
  -skin string
        Skin thickness formula: linear or bands (default "linear")
  -lang string
        Output language: en or hi (default "en")
  -workers int
        Number of concurrent evaluations (default 4)
  -timeout duration
        Per-form timeout (default 10s)
  -log string
        Also write logs to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Form file example:
  sex: female
  age: 45
  pregnancies: 2
  weight_kg: 72
  height_cm: 160
  glucose: 130
  relatives: [Parent, Sibling]
  lifestyle:
    active: false
`)
}
