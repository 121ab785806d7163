package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/response"
	zlog "github.com/rs/zerolog/log"
)

// Check is a named readiness check of one dependency.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

type HealthHandler struct {
	checks []Check
}

func NewHealthHandler(checks ...Check) *HealthHandler { return &HealthHandler{checks: checks} }

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports 503 when any dependency check fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	out := map[string]string{}
	for _, c := range h.checks {
		if err := c.Fn(ctx); err != nil {
			zlog.Warn().Err(err).Str("check", c.Name).Msg("readiness check failed")
			out[c.Name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		out[c.Name] = "up"
	}
	response.Data(w, status, out)
}
