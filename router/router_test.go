// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/project51/cache"
	"github.com/danielhkuo/project51/geo"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	c := cache.NewMemoryCache(0)
	t.Cleanup(func() { c.Close() })

	cfg := testutil.GetTestConfig()
	return NewRouter(Deps{
		Store:   testutil.SetupTestStore(t),
		Config:  cfg,
		Cache:   c,
		Locator: geo.NewChain("", cfg.GeoLookupTimeout),
	})
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "operational" {
		t.Errorf("Expected status 'operational', got '%s'", resp.Status)
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "Project 51 API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	// Unknown paths are not swallowed by the banner
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/health", http.StatusOK},
		{"GET", "/api/me", http.StatusOK},
		{"GET", "/api/stats", http.StatusOK},
		{"GET", "/api/stats/global", http.StatusOK},
		{"GET", "/api/stats/DK", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"POST", "/api/vote", http.StatusBadRequest}, // empty body
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			testutil.AssertStatus(t, w, tc.status)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/vote"},
		{"POST", "/api/stats"},
		{"DELETE", "/api/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected status 405, got %d", w.Code)
			}
		})
	}
}

// TestVoteThenStats checks that stats served through the router reflect a
// vote immediately, even after the tallies were cached
func TestVoteThenStats(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/stats", nil))
	if w.Body.String() != "{}\n" {
		t.Fatalf("Expected empty stats, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/vote",
		map[string]string{"country": "DK", "vote": "no"}, testutil.FromIP("203.0.113.1")))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/vote",
		map[string]string{"country": "US", "vote": "yes"}, testutil.FromIP("203.0.113.1")))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/stats", nil))
	if got := strings.TrimSpace(w.Body.String()); got != `{"DK":{"yes":0,"no":1}}` {
		t.Errorf("Expected DK tally, got %s", got)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/stats/global", nil))
	var global models.GlobalTallyResponse
	testutil.AssertJSON(t, w, &global)
	if global != (models.GlobalTallyResponse{Yes: 0, No: 1, Total: 1}) {
		t.Errorf("Unexpected global tally: %+v", global)
	}
}

func TestMetricsEndpointCountsRoutes(t *testing.T) {
	mux := newTestRouter(t)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/health", nil))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(w.Body.String(), `route="GET /api/health"`) {
		t.Error("Expected http_requests_total to be labelled by route pattern")
	}
}
