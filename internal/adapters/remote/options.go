package remote

import (
	"net/http"
	"time"

	"github.com/okian/diarisk/pkg/logger"
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithTimeout bounds each inference call.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its Timeout takes precedence over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Classifier) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBreakerName names the circuit breaker in logs and metrics.
func WithBreakerName(name string) Option {
	return func(c *Classifier) {
		if name != "" {
			c.name = name
		}
	}
}

// WithTripAfter opens the breaker after n consecutive failures.
func WithTripAfter(n uint32) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.tripAfter = n
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before probing again.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.openTimeout = d
		}
	}
}
