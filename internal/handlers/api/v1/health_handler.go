package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mythweaver/mythweaver/internal/redis"
)

// HealthResponse reports service health and per-component status
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

// HealthHandler serves the health check endpoint
type HealthHandler struct {
	redisClient redis.Client
	logger      *slog.Logger
}

// NewHealthHandler creates a health handler that pings the given client
func NewHealthHandler(redisClient redis.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		logger:      logger,
	}
}

// RegisterRoutes registers the health endpoint on the mux
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", h.handleHealth)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.logger.Warn("redis health check failed", "error", err)
		components["redis"] = "unhealthy"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		components["redis"] = "healthy"
	}

	resp := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Service:    "mythweaver",
		Components: components,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
