// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the durable, append-only vote store.

# Operations

	s, err := store.New(conn, cfg.DatabaseType)

	vote, err := s.Insert(ctx, models.Vote{...})   // ErrAlreadyVoted on duplicate token
	vote, err := s.FindByToken(ctx, token)         // ErrNotFound when absent
	rows, err := s.CountByCountry(ctx)             // grouped (country, vote) counts

There is no update or delete path.

# Deduplication

Insert is a single INSERT statement. Uniqueness of ip_hash is enforced by
the schema, and the store translates the driver's unique-violation error
into ErrAlreadyVoted:

  - PostgreSQL: SQLSTATE 23505 (unique_violation)
  - SQLite: SQLITE_CONSTRAINT_UNIQUE

No lookup precedes the insert, so two concurrent submissions from one
identity cannot both succeed: the loser always sees ErrAlreadyVoted.

# Errors

Every other failure is returned wrapped and should be treated as a
storage error by callers.
*/
package store
