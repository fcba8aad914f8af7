package health

import (
	"context"
	"net/http"
	"time"
	httputil "travelbook/pkg/http"
	"travelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const readyTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type HealthResponse struct {
	Status     string `json:"status"`
	Dependency string `json:"dependency,omitempty"`
}

type HealthHandler struct {
	name  string
	check Check
	log   *logger.Logger
}

// NewHealthHandler serves /health and /ready. name labels the dependency
// probed by check; a nil check makes the service always ready.
func NewHealthHandler(name string, check Check, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		name:  name,
		check: check,
		log:   log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.check == nil {
		h.write(w, http.StatusOK, HealthResponse{Status: "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.check(ctx); err != nil {
		h.log.Error("Readiness check failed",
			"dependency", h.name,
			"error", err,
			"path", r.URL.Path,
		)
		h.write(w, http.StatusServiceUnavailable, HealthResponse{
			Status:     "unavailable",
			Dependency: h.name + ": error",
		})
		return
	}

	h.write(w, http.StatusOK, HealthResponse{
		Status:     "ready",
		Dependency: h.name + ": ok",
	})
}

func (h *HealthHandler) write(w http.ResponseWriter, status int, resp HealthResponse) {
	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
