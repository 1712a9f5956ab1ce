package handlers

import (
	"context"
	"net/http"
	"time"
	"todoWeb/internal/logger"
)

type HealthChecker interface {
	HealthCheck(context.Context) error
}

type HealthHandler struct {
	checks map[string]HealthChecker
}

func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check.HealthCheck(ctx); err != nil {
			logger.Error("HTTP: Health check не пройден", err)
			components[name] = "unavailable"
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	responseWithJSON(w, code,
		toPayload("service", "todo-web"),
		toPayload("status", status),
		toPayload("components", components),
		toPayload("time", time.Now().Format(time.RFC3339)),
	)
}
