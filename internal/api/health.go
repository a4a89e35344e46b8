package api

import (
	"net/http"

	"github.com/fanpulse/fanpulse/internal/api/respond"
)

// HealthReporter reports cached service health.
type HealthReporter interface {
	IsHealthy() bool
}

// HealthHandler serves GET /api/health from the cached aggregate flag so the
// endpoint never blocks on a live dependency probe.
type HealthHandler struct {
	reporter HealthReporter
}

func NewHealthHandler(r HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: r}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if h.reporter != nil && h.reporter.IsHealthy() {
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		return
	}
	respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
}
