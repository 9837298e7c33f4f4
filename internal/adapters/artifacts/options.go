package artifacts

import "github.com/okian/diarisk/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}
