// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Project 51 API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Store:     voteStore,
		Config:    cfg,
		Cache:     statsCache,
		Publisher: publisher,
		Locator:   geo.NewChain(cfg.GeoLookupURL, cfg.GeoLookupTimeout),
	})

# Endpoints

	GET  /api/health            - Liveness
	POST /api/vote              - Cast a vote
	GET  /api/me                - Requester location and vote status
	GET  /api/stats             - Tallies by country
	GET  /api/stats/global      - Tally across all countries
	GET  /api/stats/{country}   - Tally for one country
	GET  /metrics               - Prometheus metrics
	GET  /                      - API banner

The vote and stats handlers share one TallyCache, so a recorded vote
invalidates the tallies the stats endpoints serve.
*/
package router
