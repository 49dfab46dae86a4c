// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus collectors for the vote service.
//
// Collectors are registered once on the default registry at package init
// and exposed by Handler at GET /metrics.
package metrics
