package predict

import "errors"

// Sentinel error kinds for this package.
var (
	ErrPredictionDisabled = errors.New("prediction disabled: model or scaler not loaded")
	ErrInvalidArtifact    = errors.New("invalid model artifact")
	ErrInvalidResult      = errors.New("invalid prediction result")
)
