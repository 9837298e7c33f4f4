package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrUnknownEstimate = errors.New("unknown estimate")
)
