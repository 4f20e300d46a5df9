package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/aboh-server/internal/api/http/response"
	"github.com/dtroode/aboh-server/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports database reachability.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: database ping failed",
			"error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
