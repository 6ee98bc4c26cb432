package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service AnalysisServiceInterface
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service AnalysisServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now(),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.started).String(),
	})
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{"status": "alive"})
}

// ReadinessCheck handles GET /api/health/ready. Ready means a dataset has
// been loaded and analysis operations can serve.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.service.Dataset()
	if err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]interface{}{
			"status": "not_ready",
			"reason": "no dataset loaded",
		})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "ready",
		"loaded_at": dataset.LoadedAt,
		"counts": map[string]int{
			"sales":    len(dataset.Sales),
			"payments": len(dataset.Payments),
			"stock":    len(dataset.Stock),
		},
	})
}
