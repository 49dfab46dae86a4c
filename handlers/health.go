// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/models"
)

type HealthHandler struct {
	system string
	now    func() time.Time
}

func NewHealthHandler(cfg cliparse.Config) *HealthHandler {
	return &HealthHandler{system: cfg.SystemName, now: time.Now}
}

// Health handles GET /api/health. It is a liveness probe and does not
// touch the store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "operational",
		System:    h.system,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
