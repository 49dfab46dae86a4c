// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port (default: 4321)
	-d              Database URL
	-t              Database type: sqlite or postgres (default: sqlite)
	-ip-salt        HMAC key for identity tokens (optional)
	-redis          Redis URL for the tally cache (optional)
	-stats-ttl      Tally cache lifetime (default: 10s)
	-kafka-brokers  Comma separated Kafka brokers for vote events (optional)
	-kafka-topic    Kafka topic (default: votes)
	-geo-url        Fallback geolocation endpoint (default: http://ip-api.com/json/)
	-geo-timeout    Fallback geolocation timeout (default: 2s)
	-system         System name reported by /api/health (default: Project 51)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	IP_HASH_SALT       → -ip-salt
	REDIS_URL          → -redis
	STATS_CACHE_TTL    → -stats-ttl
	KAFKA_BROKERS      → -kafka-brokers
	KAFKA_TOPIC        → -kafka-topic
	GEO_LOOKUP_URL     → -geo-url
	GEO_LOOKUP_TIMEOUT → -geo-timeout
	SYSTEM_NAME        → -system

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - PORT or a duration is malformed
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres (sqlite defaults to file:project51.db)
*/
package cliparse
