// Package postgres persists session snapshots as JSONB rows keyed by the
// session code. One row per game keeps the storage contract identical to
// the in-memory store: whole-snapshot save, whole-snapshot load.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtkeeper/courtside/internal/model"
	"github.com/courtkeeper/courtside/internal/repository"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ repository.SessionRepository = (*Store)(nil)
var _ repository.Pinger = (*Store)(nil)

// Migrate creates the sessions table when it does not exist yet. Schema is
// deliberately minimal: the snapshot is opaque, only listing fields are
// promoted to columns.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			code        TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			status      TEXT NOT NULL,
			data        JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate sessions table: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, session *model.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.Code, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessions (code, name, status, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		session.Code, session.Name, string(session.State.Status), payload, session.UpdatedAt)
	return repository.MapPgError(err)
}

func (s *Store) Load(ctx context.Context, code string) (*model.GameSession, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM sessions WHERE code = $1`, code).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	var session model.GameSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", code, err)
	}
	return &session, nil
}

func (s *Store) List(ctx context.Context) ([]repository.SessionSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, name, status, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]repository.SessionSummary, 0, 8)
	for rows.Next() {
		var it repository.SessionSummary
		var status string
		var updated time.Time
		if err := rows.Scan(&it.Code, &it.Name, &status, &updated); err != nil {
			return nil, repository.MapPgError(err)
		}
		it.Status = model.SessionStatus(status)
		it.UpdatedAt = updated
		res = append(res, it)
	}
	return res, rows.Err()
}

func (s *Store) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sessions WHERE code = $1)`, code).Scan(&exists)
	return exists, repository.MapPgError(err)
}

func (s *Store) Delete(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE code = $1`, code)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
