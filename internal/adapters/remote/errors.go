package remote

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("remote predictor unavailable")
	// ErrRemote wraps transport, status and decoding failures.
	ErrRemote = errors.New("remote predictor failed")
)
