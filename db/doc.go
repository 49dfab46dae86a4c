// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the vote database and creates its schema.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL uses github.com/lib/pq. SQLite uses modernc.org/sqlite with a
busy timeout and a single pooled connection, so concurrent writers queue
instead of failing with SQLITE_BUSY (and ":memory:" databases survive for
the life of the pool).

# Schema Creation

CreateSchema initializes the votes table for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

	votes(id, country_code, vote_type, ip_hash, created_at)

  - id: autoincrement primary key, never exposed
  - vote_type: CHECK (vote_type IN ('yes', 'no'))
  - ip_hash: UNIQUE, the only deduplication key

Rows are append-only: nothing in the service updates or deletes them.

# Indexes

  - votes.ip_hash (unique)
  - votes.country_code
*/
package db
