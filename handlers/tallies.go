// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/project51/cache"
	"github.com/danielhkuo/project51/metrics"
	"github.com/danielhkuo/project51/models"
	"github.com/danielhkuo/project51/store"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"
)

const talliesKey = "tallies"

// TallyCache serves per-country tallies from a short-lived cache and
// recomputes them from the store on a miss. Concurrent misses share one
// store query.
type TallyCache struct {
	store store.VoteStore
	cache cache.Cache
	ttl   time.Duration

	group singleflight.Group
	gen   atomic.Uint64
}

func NewTallyCache(s store.VoteStore, c cache.Cache, ttl time.Duration) *TallyCache {
	return &TallyCache{store: s, cache: c, ttl: ttl}
}

// Load returns the full tally map or an error, never a partial map
func (tc *TallyCache) Load(ctx context.Context) (models.Tallies, error) {
	if tallies, ok := tc.cached(ctx); ok {
		return tallies, nil
	}

	v, err, _ := tc.group.Do(talliesKey, func() (any, error) {
		return tc.recompute(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(models.Tallies), nil
}

// Invalidate drops the cached tallies so the next Load sees recent votes
func (tc *TallyCache) Invalidate(ctx context.Context) {
	tc.gen.Add(1)
	tc.group.Forget(talliesKey)

	if tc.cache == nil {
		return
	}
	if err := tc.cache.Delete(ctx, talliesKey); err != nil {
		slog.Warn("failed to invalidate tally cache", "error", err)
	}
}

func (tc *TallyCache) cached(ctx context.Context) (models.Tallies, bool) {
	if tc.cache == nil || tc.ttl <= 0 {
		return nil, false
	}

	data, err := tc.cache.Get(ctx, talliesKey)
	if errors.Is(err, cache.ErrMiss) {
		metrics.StatsCache.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	if err != nil {
		metrics.StatsCache.WithLabelValues(metrics.CacheError).Inc()
		slog.Warn("failed to read tally cache", "error", err)
		return nil, false
	}

	var tallies models.Tallies
	if err := json.Unmarshal(data, &tallies); err != nil {
		metrics.StatsCache.WithLabelValues(metrics.CacheError).Inc()
		slog.Warn("discarding corrupt tally cache entry", "error", err)
		return nil, false
	}

	metrics.StatsCache.WithLabelValues(metrics.CacheHit).Inc()
	return tallies, true
}

func (tc *TallyCache) recompute(ctx context.Context) (models.Tallies, error) {
	gen := tc.gen.Load()

	rows, err := tc.store.CountByCountry(ctx)
	if err != nil {
		return nil, err
	}
	tallies := fold(rows)

	total := tallies.Totals()
	slog.Info("tallies recomputed",
		"countries", len(tallies),
		"votes", humanize.Comma(total.Total()),
	)

	// A vote recorded while the query ran would be hidden until expiry
	if tc.cache != nil && tc.ttl > 0 && tc.gen.Load() == gen {
		data, err := json.Marshal(tallies)
		if err == nil {
			err = tc.cache.Set(ctx, talliesKey, data, tc.ttl)
		}
		if err != nil {
			slog.Warn("failed to write tally cache", "error", err)
		}
	}

	return tallies, nil
}

// fold groups rows into per-country tallies. Combinations without rows
// stay zero and countries without rows are absent.
func fold(rows []store.CountRow) models.Tallies {
	tallies := make(models.Tallies, len(rows))
	for _, row := range rows {
		if _, ok := tallies[row.Country]; !ok {
			tallies[row.Country] = models.Tally{}
		}
		tallies.Add(row.Country, row.Vote, row.Count)
	}
	return tallies
}
