package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds the whole readiness sweep so a hung dependency
// cannot stall the probe.
const readinessTimeout = 5 * time.Second

// DependencyCheck is one named readiness probe (database ping, cache ping).
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version string
	checks  []DependencyCheck
}

func NewHealthHandler(version string, checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Liveness handles GET /healthz: the process is up and serving.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Readiness handles GET /readyz: every registered dependency must answer.
// Any failure returns 503 with the per-dependency breakdown.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			results[check.Name] = err.Error()
			healthy = false
		} else {
			results[check.Name] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}
