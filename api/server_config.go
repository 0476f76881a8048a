package api

import (
	"log/slog"
	"time"
)

// DefaultMaxRequestBodySize bounds request bodies when no limit is configured.
const DefaultMaxRequestBodySize = 1 << 20

// HTTPServerConfig configures the override daemon's listeners.
type HTTPServerConfig struct {
	// ListenAddr serves the apply and guard API.
	ListenAddr string

	// MetricsAddr serves /metrics. Empty disables the metrics listener.
	MetricsAddr string

	// EnablePprof mounts /debug/pprof on the API listener.
	EnablePprof bool

	Log *slog.Logger

	// DrainDuration is how long Shutdown advertises not-ready before
	// closing listeners.
	DrainDuration time.Duration

	// GracefulShutdownDuration bounds in-flight apply and guard requests
	// during shutdown.
	GracefulShutdownDuration time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxRequestBodySize caps guard request bodies (host call stacks).
	// Zero selects DefaultMaxRequestBodySize.
	MaxRequestBodySize int64
}

// BodyLimit returns the effective request body cap.
func (c *HTTPServerConfig) BodyLimit() int64 {
	if c.MaxRequestBodySize <= 0 {
		return DefaultMaxRequestBodySize
	}
	return c.MaxRequestBodySize
}
