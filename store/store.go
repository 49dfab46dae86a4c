// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/models"
)

var (
	ErrAlreadyVoted = errors.New("identity has already voted")
	ErrNotFound     = errors.New("vote not found")
)

// VoteStore is the contract handlers depend on
type VoteStore interface {
	Insert(ctx context.Context, vote models.Vote) (models.Vote, error)
	FindByToken(ctx context.Context, token string) (models.Vote, error)
	CountByCountry(ctx context.Context) ([]CountRow, error)
}

// CountRow is one (country, vote type) group
type CountRow struct {
	Country string
	Vote    models.VoteType
	Count   int64
}

type queries struct {
	insert         string
	findByToken    string
	countByCountry string
	count          string
}

var postgresQueries = queries{
	insert: `
		INSERT INTO votes (country_code, vote_type, ip_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
	findByToken: `
		SELECT id, country_code, vote_type, ip_hash, created_at
		FROM votes WHERE ip_hash = $1
	`,
	countByCountry: `
		SELECT country_code, vote_type, COUNT(*)
		FROM votes
		GROUP BY country_code, vote_type
	`,
	count: `SELECT COUNT(*) FROM votes`,
}

var sqliteQueries = queries{
	insert: `
		INSERT INTO votes (country_code, vote_type, ip_hash, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`,
	findByToken: `
		SELECT id, country_code, vote_type, ip_hash, created_at
		FROM votes WHERE ip_hash = ?
	`,
	countByCountry: postgresQueries.countByCountry,
	count:          postgresQueries.count,
}

// SQLStore implements VoteStore over database/sql
type SQLStore struct {
	db *sql.DB
	q  queries
}

// New wraps an open connection. The schema must already exist.
func New(db *sql.DB, dbType string) (*SQLStore, error) {
	switch dbType {
	case cliparse.DatabasePostgres:
		return &SQLStore{db: db, q: postgresQueries}, nil
	case cliparse.DatabaseSQLite:
		return &SQLStore{db: db, q: sqliteQueries}, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", dbType)
}

// Insert appends a vote and returns it with its assigned ID
func (s *SQLStore) Insert(ctx context.Context, vote models.Vote) (models.Vote, error) {
	if !vote.Type.Valid() {
		return models.Vote{}, models.ErrInvalidVote
	}
	if vote.IdentityToken == "" {
		return models.Vote{}, errors.New("identity token is required")
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	err := s.db.QueryRowContext(ctx, s.q.insert,
		vote.CountryCode, vote.Type, vote.IdentityToken, vote.CreatedAt,
	).Scan(&vote.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return vote, nil
}

// FindByToken returns the vote recorded for an identity token
func (s *SQLStore) FindByToken(ctx context.Context, token string) (models.Vote, error) {
	var vote models.Vote
	err := s.db.QueryRowContext(ctx, s.q.findByToken, token).Scan(
		&vote.ID, &vote.CountryCode, &vote.Type, &vote.IdentityToken, &vote.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}
	return vote, nil
}

// CountByCountry returns vote counts grouped by country and vote type.
// The result is complete or an error is returned.
func (s *SQLStore) CountByCountry(ctx context.Context) ([]CountRow, error) {
	rows, err := s.db.QueryContext(ctx, s.q.countByCountry)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	var out []CountRow
	for rows.Next() {
		var row CountRow
		if err := rows.Scan(&row.Country, &row.Vote, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	return out, nil
}

// Count returns the number of stored votes
func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, s.q.count).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}
