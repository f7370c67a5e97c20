package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBaseURL is the development API endpoint.
const DefaultBaseURL = "http://localhost:3001"

// Config holds the configuration for the HTTP gateway.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration // applied when HTTPClient is nil
	Logger     *slog.Logger

	// RatePerSecond limits outgoing requests. Zero disables limiting.
	RatePerSecond float64
	Burst         int

	// Registerer receives the gateway counters. Nil disables metrics.
	Registerer prometheus.Registerer

	// Now is the clock used for locally stamped timestamps. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}
