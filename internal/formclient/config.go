// Package formclient evaluates patient form files from the command line,
// either in-process or against a running server.
package formclient

import "time"

// Config holds configuration for a CLI run.
type Config struct {
	FormFiles  []string      // YAML or JSON form files
	ServerURL  string        // Evaluate remotely when set
	ModelPath  string        // Local model artifact
	ScalerPath string        // Local scaler artifact
	Skin       string        // Skin thickness formula for local runs
	Lang       string        // Output language (en, hi)
	Workers    int           // Concurrent evaluations
	Timeout    time.Duration // Per-form timeout
	LogFile    string        // Optional log file
	Verbose    bool          // Debug logging
}

// Result is one evaluated form with its presentation strings.
type Result struct {
	File       string
	Assessment Assessment
	Err        error
}

// Stats holds run statistics.
type Stats struct {
	Forms     int
	Succeeded int
	Failed    int
	Diabetic  int
	Disabled  int
	StartTime time.Time
	Duration  time.Duration
}
