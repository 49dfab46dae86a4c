// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/models"
)

type StatsHandler struct {
	tallies *TallyCache
	maxAge  time.Duration
}

func NewStatsHandler(tallies *TallyCache, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{tallies: tallies, maxAge: cfg.StatsCacheTTL}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	tallies, ok := h.load(w, r)
	if !ok {
		return
	}

	h.setCacheHeaders(w)
	middleware.JSONResponse(w, http.StatusOK, tallies)
}

// GetGlobal handles GET /api/stats/global
func (h *StatsHandler) GetGlobal(w http.ResponseWriter, r *http.Request) {
	tallies, ok := h.load(w, r)
	if !ok {
		return
	}

	total := tallies.Totals()
	h.setCacheHeaders(w)
	middleware.JSONResponse(w, http.StatusOK, models.GlobalTallyResponse{
		Yes:   total.Yes,
		No:    total.No,
		Total: total.Total(),
	})
}

// GetCountry handles GET /api/stats/{country}
func (h *StatsHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	country := r.PathValue("country")
	if country == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "country is required")
		return
	}
	country = models.NormalizeCountry(country)

	tallies, ok := h.load(w, r)
	if !ok {
		return
	}

	tally := tallies[country]
	h.setCacheHeaders(w)
	middleware.JSONResponse(w, http.StatusOK, models.CountryTallyResponse{
		Country: country,
		Yes:     tally.Yes,
		No:      tally.No,
	})
}

func (h *StatsHandler) load(w http.ResponseWriter, r *http.Request) (models.Tallies, bool) {
	tallies, err := h.tallies.Load(r.Context())
	if err != nil {
		slog.Error("failed to fetch stats", "error", err, "request_id", middleware.RequestIDFrom(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
		return nil, false
	}
	return tallies, true
}

func (h *StatsHandler) setCacheHeaders(w http.ResponseWriter) {
	seconds := int(h.maxAge / time.Second)
	if seconds <= 0 {
		w.Header().Set("Cache-Control", "no-cache")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(seconds))
}
