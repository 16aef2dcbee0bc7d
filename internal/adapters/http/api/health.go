package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

// HealthHandler serves liveness plus the Prometheus exposition endpoint.
type HealthHandler struct {
	prom http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		prom: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz. The process is alive if it can answer,
// so the handler doubles as the metrics scrape target.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.prom.ServeHTTP(w, r)
}
