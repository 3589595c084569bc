// Package leaderboard stores and serves per-date puzzle completion times.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists completion times keyed by (day, username). Days use the
// YYYY-MM-DD form throughout.
type Store interface {
	Upsert(ctx context.Context, day, username string, seconds int) error
	Scores(ctx context.Context, day string) (map[string]int, error)
	Dates(ctx context.Context) ([]string, error)
	Close()
}

// PGStore is the Postgres-backed Store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects a pool to databaseURL and verifies the connection.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// Upsert records a completion time, replacing any earlier submission by
// the same user on the same day.
func (s *PGStore) Upsert(ctx context.Context, day, username string, seconds int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scores (day, username, seconds) VALUES ($1, $2, $3)
		 ON CONFLICT (day, username) DO UPDATE SET seconds = EXCLUDED.seconds`,
		day, username, seconds)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// Scores returns the {username: seconds} map for a day. A day with no
// submissions yields an empty map.
func (s *PGStore) Scores(ctx context.Context, day string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT username, seconds FROM scores WHERE day = $1`, day)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var username string
		var seconds int
		if err := rows.Scan(&username, &seconds); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores[username] = seconds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	return scores, nil
}

// Dates lists days with at least one submission, most recent first.
func (s *PGStore) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT to_char(day, 'YYYY-MM-DD') FROM scores ORDER BY 1 DESC`)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dates: %w", err)
	}
	return dates, nil
}

// Close releases the pool.
func (s *PGStore) Close() {
	s.pool.Close()
}
