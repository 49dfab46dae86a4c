// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/project51/geo"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/testutil"
)

type fixedLocator geo.Location

func (l fixedLocator) Locate(ctx context.Context, r *http.Request) geo.Location {
	return geo.Location(l)
}

func getMe(t *testing.T, handler *StatusHandler, ip string) models.StatusResponse {
	t.Helper()

	w := httptest.NewRecorder()
	handler.GetMe(w, testutil.MakeRequest("GET", "/api/me", nil, testutil.FromIP(ip)))

	testutil.AssertStatus(t, w, http.StatusOK)
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Expected Cache-Control 'no-store', got '%s'", cc)
	}

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestGetMe_NotVoted(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewStatusHandler(s, testutil.GetTestConfig(), fixedLocator{Country: "DK", City: "Copenhagen"})

	resp := getMe(t, handler, "203.0.113.20")

	if resp.Country != "DK" || resp.City != "Copenhagen" {
		t.Errorf("Unexpected location: %+v", resp)
	}
	if resp.Display != "Copenhagen, DK" {
		t.Errorf("Expected display 'Copenhagen, DK', got '%s'", resp.Display)
	}
	if resp.HasVoted {
		t.Error("Expected hasVoted false")
	}
	if resp.VoteType != nil {
		t.Errorf("Expected null voteType, got %v", *resp.VoteType)
	}
}

func TestGetMe_AfterVote(t *testing.T) {
	s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewStatusHandler(s, cfg, fixedLocator{Country: "US", City: "Boston"})

	testutil.CreateTestVote(t, s, cfg, "203.0.113.21", "US", models.VoteYes)

	// Status stays the same however often it is read
	for i := 0; i < 3; i++ {
		resp := getMe(t, handler, "203.0.113.21")
		if !resp.HasVoted {
			t.Fatalf("read %d: expected hasVoted true", i)
		}
		if resp.VoteType == nil || *resp.VoteType != models.VoteYes {
			t.Fatalf("read %d: expected voteType 'yes', got %v", i, resp.VoteType)
		}
	}

	// Another origin is unaffected
	if resp := getMe(t, handler, "203.0.113.22"); resp.HasVoted {
		t.Error("Expected other origin to be unvoted")
	}
}

func TestGetMe_NullVoteTypeInJSON(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewStatusHandler(s, testutil.GetTestConfig(), fixedLocator(geo.Unknown()))

	w := httptest.NewRecorder()
	handler.GetMe(w, testutil.MakeRequest("GET", "/api/me", nil, nil))

	want := `{"country":"XX","city":"Unknown Location","display":"Unknown Origin","hasVoted":false,"voteType":null}` + "\n"
	if w.Body.String() != want {
		t.Errorf("Expected body %s, got %s", want, w.Body.String())
	}
}

func TestGetMe_StoreFailureDegrades(t *testing.T) {
	handler := NewStatusHandler(testutil.FailingStore{}, testutil.GetTestConfig(), nil)

	resp := getMe(t, handler, "203.0.113.23")

	if resp.HasVoted {
		t.Error("Expected hasVoted false when the store is down")
	}
	if resp.Country != models.UnknownCountry || resp.City != geo.UnknownCity {
		t.Errorf("Expected sentinel location, got %+v", resp)
	}
	if resp.Display != geo.UnknownDisplay {
		t.Errorf("Expected display '%s', got '%s'", geo.UnknownDisplay, resp.Display)
	}
}

func TestGetMe_GeoChainFallsBackToSentinel(t *testing.T) {
	s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	// Nothing listens on port 1, so the lookup fails fast
	chain := geo.NewChain("http://127.0.0.1:1/json/", cfg.GeoLookupTimeout)
	handler := NewStatusHandler(s, cfg, chain)

	resp := getMe(t, handler, "203.0.113.24")

	if resp.Country != models.UnknownCountry {
		t.Errorf("Expected country '%s', got '%s'", models.UnknownCountry, resp.Country)
	}
}

func TestGetMe_EdgeHeaders(t *testing.T) {
	s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewStatusHandler(s, cfg, geo.NewChain("", cfg.GeoLookupTimeout))

	req := testutil.MakeRequest("GET", "/api/me", nil, map[string]string{
		"CF-Connecting-IP": "203.0.113.25",
		geo.HeaderCountry:  "SE",
		geo.HeaderCity:     "Malmö",
	})
	w := httptest.NewRecorder()
	handler.GetMe(w, req)

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Display != "Malmö, SE" {
		t.Errorf("Expected display 'Malmö, SE', got '%s'", resp.Display)
	}
}
