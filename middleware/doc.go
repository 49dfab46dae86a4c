// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

WithRequestID wraps the whole mux. It reuses an incoming X-Request-ID
header or generates a UUID, echoes it on the response and stores it in
the request context:

	server := http.Server{
		Handler: middleware.WithRequestID(middleware.CORS(mux)),
	}

	id := middleware.RequestIDFrom(r.Context())

# Request Logging and Metrics

Wrap route handlers:

	mux.HandleFunc("POST /api/vote", middleware.WithLogging(handler.CastVote))

WithLogging logs request start and completion (status, duration_ms,
request_id) and records project51_http_requests_total and
project51_http_request_duration_seconds labelled by the route pattern.

# CORS Middleware

Allows methods GET, POST, OPTIONS with headers Content-Type and
X-Request-ID. Preflight requests are answered directly.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Missing vote type")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseJSONBody reads at most MaxBodyBytes.
*/
package middleware
