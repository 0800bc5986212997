package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"signup-web/internal/container"
)

// upstreamCheckTimeout bounds the activities API call made per health check
const upstreamCheckTimeout = 2 * time.Second

// HealthHandler reports whether the page can be served: its own session
// store and the activities server every page render depends on
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// UpstreamStatus describes the activities server as seen from this process
type UpstreamStatus struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	Activities int    `json:"activities"`
	LatencyMS  int64  `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status           string         `json:"status"`
	Timestamp        time.Time      `json:"timestamp"`
	Service          string         `json:"service"`
	Sessions         int            `json:"sessions"`
	MessageHideDelay string         `json:"message_hide_delay"`
	ActivitiesAPI    UpstreamStatus `json:"activities_api"`
}

// Check handles GET /health. It answers 503 with status "degraded" while the
// activities server cannot produce a collection.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	cfg := h.container.GetConfig()

	upstream := h.checkActivitiesAPI(r.Context())

	response := HealthResponse{
		Status:           "healthy",
		Timestamp:        time.Now().UTC(),
		Service:          "signup-web",
		Sessions:         h.container.GetSessionService().Count(),
		MessageHideDelay: cfg.MessageHideDelay.String(),
		ActivitiesAPI:    upstream,
	}
	status := http.StatusOK
	if !upstream.Reachable {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
		logger.WithFields(map[string]interface{}{
			"activities_api_url": upstream.URL,
			"error":              upstream.Error,
		}).Warn("Health check: activities API unavailable")
	} else {
		logger.Debug("Health check passed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode health check response")
	}
}

func (h *HealthHandler) checkActivitiesAPI(ctx context.Context) UpstreamStatus {
	ctx, cancel := context.WithTimeout(ctx, upstreamCheckTimeout)
	defer cancel()

	result := UpstreamStatus{URL: h.container.GetConfig().ActivitiesAPIURL}

	started := time.Now()
	collection, err := h.container.GetActivitiesClient().ListActivities(ctx)
	result.LatencyMS = time.Since(started).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Reachable = true
	result.Activities = collection.Len()
	return result
}
