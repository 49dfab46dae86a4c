// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/events"
	"github.com/danielhkuo/project51/identity"
	"github.com/danielhkuo/project51/metrics"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/store"
)

type VotingHandler struct {
	store     store.VoteStore
	hasher    *identity.Hasher
	tallies   *TallyCache
	publisher events.Publisher
	now       func() time.Time
}

func NewVotingHandler(s store.VoteStore, cfg cliparse.Config, tallies *TallyCache, publisher events.Publisher) *VotingHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &VotingHandler{
		store:     s,
		hasher:    identity.NewHasher(cfg.IPHashSalt),
		tallies:   tallies,
		publisher: publisher,
		now:       time.Now,
	}
}

// CastVote handles POST /api/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		metrics.VoteRejections.WithLabelValues("invalid_json").Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Vote == "" {
		metrics.VoteRejections.WithLabelValues("missing_vote").Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing vote type")
		return
	}

	voteType, err := models.ParseVoteType(req.Vote)
	if err != nil {
		metrics.VoteRejections.WithLabelValues("invalid_vote").Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "Vote must be \"yes\" or \"no\"")
		return
	}

	token := h.hasher.FromRequest(r)
	country := models.NormalizeCountry(req.Country)

	// The unique constraint on ip_hash decides; there is no prior lookup
	vote, err := h.store.Insert(r.Context(), models.Vote{
		CountryCode:   country,
		Type:          voteType,
		IdentityToken: string(token),
		CreatedAt:     h.now().UTC(),
	})
	if errors.Is(err, store.ErrAlreadyVoted) {
		metrics.VoteConflicts.Inc()
		slog.Info("duplicate vote rejected", "identity", token.Short())
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted.")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "request_id", middleware.RequestIDFrom(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	metrics.VotesCast.WithLabelValues(voteType.String()).Inc()
	if h.tallies != nil {
		h.tallies.Invalidate(r.Context())
	}

	event := models.VoteCast{Country: vote.CountryCode, Vote: vote.Type, CastAt: vote.CreatedAt}
	if err := h.publisher.Publish(context.WithoutCancel(r.Context()), event); err != nil {
		slog.Warn("failed to publish vote event", "error", err, "vote_id", vote.ID)
	}

	slog.Info("vote recorded", "vote_id", vote.ID, "country", vote.CountryCode, "vote", vote.Type)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Message: "Vote recorded",
		Country: vote.CountryCode,
		Vote:    vote.Type,
	})
}
