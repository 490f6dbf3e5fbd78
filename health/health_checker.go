// Package health reports service health for the /health endpoint.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/pillsync/pillsync-api/evidence"
	"github.com/pillsync/pillsync-api/interfaces"
)

// BreakerStates exposes the circuit states of the external providers.
type BreakerStates func() map[string]string

// Checker implements interfaces.HealthChecker. The deterministic engines
// cannot fail, so the service is healthy as long as it is up; a configured
// but unbuilt or stale evidence index degrades the status without taking
// the service down.
type Checker struct {
	index     *evidence.Index
	breakers  BreakerStates
	startTime time.Time
}

var _ interfaces.HealthChecker = (*Checker)(nil)

// NewChecker creates a health checker.
func NewChecker(index *evidence.Index, breakers BreakerStates) *Checker {
	return &Checker{
		index:     index,
		breakers:  breakers,
		startTime: time.Now(),
	}
}

// HealthCheck returns the health status, response payload, and HTTP status.
func (c *Checker) HealthCheck() (string, map[string]any, int) {
	stats := c.index.Stats()

	status := "healthy"
	httpStatus := http.StatusOK
	if c.index.Enabled() {
		indexAge := time.Since(stats.BuiltAt)
		if !stats.Ready || indexAge > 48*time.Hour {
			status = "degraded"
		}
	}

	data := map[string]any{
		"status":            status,
		"uptime_seconds":    math.Round(time.Since(c.startTime).Seconds()),
		"evidence_enabled":  c.index.Enabled(),
		"evidence_snippets": stats.Snippets,
	}
	if stats.Ready {
		data["evidence_built_at"] = stats.BuiltAt.Format(time.RFC3339)
	}
	if c.breakers != nil {
		data["upstreams"] = c.breakers()
	}

	return status, data, httpStatus
}
