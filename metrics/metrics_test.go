// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(VotesCast.WithLabelValues("yes"))
	VotesCast.WithLabelValues("yes").Inc()
	if got := testutil.ToFloat64(VotesCast.WithLabelValues("yes")); got != before+1 {
		t.Errorf("votes_cast_total{vote=yes} = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(VoteConflicts)
	VoteConflicts.Inc()
	if got := testutil.ToFloat64(VoteConflicts); got != before+1 {
		t.Errorf("vote_conflicts_total = %v, want %v", got, before+1)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	VoteRejections.WithLabelValues("invalid_vote").Inc()
	StatsCache.WithLabelValues(CacheMiss).Inc()
	GeoFallback.WithLabelValues(GeoUnknown).Inc()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	body, _ := io.ReadAll(rr.Body)
	for _, name := range []string{
		"project51_vote_rejections_total",
		"project51_stats_cache_total",
		"project51_geo_fallback_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
