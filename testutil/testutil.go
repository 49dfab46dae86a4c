// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/db"
	"github.com/danielhkuo/project51/identity"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/store"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = ":memory:"

// ErrStoreDown is returned by every FailingStore method
var ErrStoreDown = errors.New("store unavailable")

// SetupTestStore creates a fresh in-memory store with the full schema
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	s, err := store.New(conn, cliparse.DatabaseSQLite)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             4321,
		DatabaseURL:      TestDBURL,
		DatabaseType:     cliparse.DatabaseSQLite,
		IPHashSalt:       "test-ip-salt",
		StatsCacheTTL:    10 * time.Second,
		KafkaTopic:       cliparse.DefaultKafkaTopic,
		GeoLookupTimeout: 100 * time.Millisecond,
		SystemName:       cliparse.DefaultSystemName,
	}
}

// CreateTestVote records a vote for the given client address
func CreateTestVote(t *testing.T, s store.VoteStore, cfg cliparse.Config, ip, country string, vote models.VoteType) models.Vote {
	t.Helper()

	token := identity.NewHasher(cfg.IPHashSalt).Token(ip)
	saved, err := s.Insert(context.Background(), models.Vote{
		CountryCode:   country,
		Type:          vote,
		IdentityToken: string(token),
	})
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return saved
}

// FailingStore is a VoteStore whose backend is always down
type FailingStore struct{}

func (FailingStore) Insert(ctx context.Context, vote models.Vote) (models.Vote, error) {
	return models.Vote{}, ErrStoreDown
}

func (FailingStore) FindByToken(ctx context.Context, token string) (models.Vote, error) {
	return models.Vote{}, ErrStoreDown
}

func (FailingStore) CountByCountry(ctx context.Context) ([]store.CountRow, error) {
	return nil, ErrStoreDown
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// FromIP returns headers that make a request originate from ip
func FromIP(ip string) map[string]string {
	return map[string]string{identity.HeaderConnectingIP: ip}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
