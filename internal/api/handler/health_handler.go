package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger checks connectivity to one external dependency.
type Pinger func(ctx context.Context) error

// ReadinessHandler handles GET /health/ready — readiness probe. The service
// is ready when its backend answers a ping and every collection has applied
// its first snapshot.
type ReadinessHandler struct {
	store   *store.Store
	pingers map[string]Pinger
}

func NewReadinessHandler(st *store.Store, pingers map[string]Pinger) *ReadinessHandler {
	return &ReadinessHandler{store: st, pingers: pingers}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
	Collections  map[string]bool             `json:"collections"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.pingers))
	healthy := true
	for name, ping := range h.pingers {
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps[name] = dependencyStatus{Status: "ok"}
		}
	}

	cols := make(map[string]bool, len(ports.Collections))
	for _, col := range ports.Collections {
		ready := h.store.Ready(col)
		cols[string(col)] = ready
		if !ready {
			healthy = false
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
		Collections:  cols,
	})
}
