// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/project51/cache"
	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/events"
	"github.com/danielhkuo/project51/handlers"
	"github.com/danielhkuo/project51/metrics"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/store"
)

// Deps are the shared collaborators handed to every handler
type Deps struct {
	Store     store.VoteStore
	Config    cliparse.Config
	Cache     cache.Cache      // nil disables tally caching
	Publisher events.Publisher // nil disables vote events
	Locator   handlers.Locator // nil always reports an unknown origin
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	cfg := deps.Config

	// Initialize handlers
	tallies := handlers.NewTallyCache(deps.Store, deps.Cache, cfg.StatsCacheTTL)
	votingHandler := handlers.NewVotingHandler(deps.Store, cfg, tallies, deps.Publisher)
	statusHandler := handlers.NewStatusHandler(deps.Store, cfg, deps.Locator)
	statsHandler := handlers.NewStatsHandler(tallies, cfg)
	healthHandler := handlers.NewHealthHandler(cfg)

	// Health check
	mux.HandleFunc("GET /api/health", middleware.WithLogging(healthHandler.Health))

	// Voting
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /api/me", middleware.WithLogging(statusHandler.GetMe))

	// Tallies
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /api/stats/global", middleware.WithLogging(statsHandler.GetGlobal))
	mux.HandleFunc("GET /api/stats/{country}", middleware.WithLogging(statsHandler.GetCountry))

	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cfg.SystemName + " API v1"))
	})

	return mux
}
