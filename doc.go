// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Project 51 API server.

Project 51 is an anonymous yes/no poll. Each network origin may vote
once; votes are tallied per country and served to a map frontend.

# Starting the Server

With no configuration the server listens on 4321 and stores votes in a
local SQLite file:

	go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..."

A .env file in the working directory is loaded before flags and
environment variables are read.

# Configuration

  - PORT (-p): Server port (default: 4321)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:project51.db)
  - IP_HASH_SALT (-ip-salt): Secret for origin hashing; plain SHA-256 when empty
  - REDIS_URL (-redis): Shared tally cache; in-memory when empty
  - STATS_CACHE_TTL (-stats-ttl): Tally cache lifetime (default: 10s)
  - KAFKA_BROKERS (-kafka-brokers): Publish vote.cast events when set
  - KAFKA_TOPIC (-kafka-topic): Event topic (default: votes)
  - GEO_LOOKUP_URL (-geo-url): Fallback geolocation service
  - GEO_LOOKUP_TIMEOUT (-geo-timeout): Fallback lookup timeout (default: 2s)
  - SYSTEM_NAME (-system): Name reported by /api/health

# Architecture

  - handlers: HTTP request handlers (vote, status, stats, health)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request IDs, CORS, logging, metrics, JSON helpers
  - identity: Origin extraction and hashing
  - store: Vote persistence with database-enforced deduplication
  - db: Connections and schema creation
  - cache: In-memory and Redis tally caches
  - geo: Edge header and lookup geolocation
  - events: Kafka vote events
  - metrics: Prometheus collectors
  - models: Domain and request/response types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
