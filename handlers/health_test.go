// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/testutil"
)

func TestHealth(t *testing.T) {
	handler := NewHealthHandler(testutil.GetTestConfig())
	handler.now = func() time.Time {
		return time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	}

	w := httptest.NewRecorder()
	handler.Health(w, testutil.MakeRequest("GET", "/api/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != "operational" {
		t.Errorf("Expected status 'operational', got '%s'", resp.Status)
	}
	if resp.System != "Project 51" {
		t.Errorf("Expected system 'Project 51', got '%s'", resp.System)
	}
	if resp.Timestamp != "2025-03-01T08:30:00Z" {
		t.Errorf("Expected UTC timestamp, got '%s'", resp.Timestamp)
	}
}
