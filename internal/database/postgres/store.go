// Package postgres implements the repository interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
)

// Store is the pool-backed repository.Store
type Store struct {
	queries
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a store over an open pool. The caller owns migrations.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{queries: queries{db: pool}, pool: pool}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the underlying pool
func (s *Store) Close() {
	s.pool.Close()
}

// BeginTx starts a transaction covering shop and character writes
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	t, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &tx{queries: queries{db: t}, tx: t}, nil
}

// ---- World ----

func (s *Store) GetHonor(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT clan, score FROM honor_scores`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHonor, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var clan string
		var score int
		if err := rows.Scan(&clan, &score); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHonor, err)
		}
		out[clan] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHonor, err)
	}
	return out, nil
}

func (s *Store) SetHonor(ctx context.Context, clan string, score int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO honor_scores (clan, score, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (clan) DO UPDATE
		SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`,
		clan, score)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertHonor, err)
	}
	return nil
}

func (s *Store) GetQuest(ctx context.Context) (*domain.ActiveQuest, error) {
	var q domain.ActiveQuest
	found, err := s.getWorld(ctx, WorldKeyQuest, &q)
	if err != nil || !found {
		return nil, err
	}
	return &q, nil
}

func (s *Store) SetQuest(ctx context.Context, quest *domain.ActiveQuest) error {
	if quest == nil {
		return s.deleteWorld(ctx, WorldKeyQuest)
	}
	return s.setWorld(ctx, WorldKeyQuest, quest)
}

func (s *Store) GetLocation(ctx context.Context) (*domain.PartyLocation, error) {
	var l domain.PartyLocation
	found, err := s.getWorld(ctx, WorldKeyLocation, &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

func (s *Store) SetLocation(ctx context.Context, loc *domain.PartyLocation) error {
	if loc == nil {
		return s.deleteWorld(ctx, WorldKeyLocation)
	}
	return s.setWorld(ctx, WorldKeyLocation, loc)
}

func (s *Store) getWorld(ctx context.Context, key string, dst any) (bool, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM world_state WHERE key = $1`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetWorldState, err)
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetWorldState, err)
	}
	return true, nil
}

func (s *Store) setWorld(ctx context.Context, key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveWorldState, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO world_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveWorldState, err)
	}
	return nil
}

func (s *Store) deleteWorld(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM world_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveWorldState, err)
	}
	return nil
}
