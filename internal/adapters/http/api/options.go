package api

import "net/http"

type options struct {
	allowedOrigins []string
	requestLogger  func(http.Handler) http.Handler
}

// Option applies a configuration option to the Server.
type Option func(*options)

// WithAllowedOrigins sets the CORS origins. Empty input keeps "*".
func WithAllowedOrigins(origins []string) Option {
	return func(o *options) {
		if len(origins) > 0 {
			o.allowedOrigins = origins
		}
	}
}

// WithRequestLogger installs an access-log middleware.
func WithRequestLogger(mw func(http.Handler) http.Handler) Option {
	return func(o *options) {
		o.requestLogger = mw
	}
}
