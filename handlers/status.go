// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/geo"
	"github.com/danielhkuo/project51/identity"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/store"
)

// Locator resolves a coarse location and never fails
type Locator interface {
	Locate(ctx context.Context, r *http.Request) geo.Location
}

type StatusHandler struct {
	store   store.VoteStore
	hasher  *identity.Hasher
	locator Locator
}

func NewStatusHandler(s store.VoteStore, cfg cliparse.Config, locator Locator) *StatusHandler {
	return &StatusHandler{
		store:   s,
		hasher:  identity.NewHasher(cfg.IPHashSalt),
		locator: locator,
	}
}

// GetMe handles GET /api/me. It reads only and always answers 200.
func (h *StatusHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	loc := geo.Unknown()
	if h.locator != nil {
		loc = h.locator.Locate(r.Context(), r)
	}

	status := h.lookup(r)

	resp := models.StatusResponse{
		Country:  loc.Country,
		City:     loc.City,
		Display:  loc.Display(),
		HasVoted: status.HasVoted(),
	}
	if vt, ok := status.VoteType(); ok {
		resp.VoteType = &vt
	}

	w.Header().Set("Cache-Control", "no-store")
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *StatusHandler) lookup(r *http.Request) models.VoteStatus {
	token := h.hasher.FromRequest(r)

	vote, err := h.store.FindByToken(r.Context(), string(token))
	if errors.Is(err, store.ErrNotFound) {
		return models.NotVoted
	}
	if err != nil {
		slog.Error("failed to check vote status", "error", err, "identity", token.Short())
		return models.NotVoted
	}
	return models.StatusOf(vote.Type)
}
