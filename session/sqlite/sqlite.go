// Package sqlite provides a persistent core.SessionStore backed by SQLite
// (modernc.org/sqlite, pure Go). Each user's state is stored as one JSON row.
// Live states are cached in-process so the engine can keep mutating the same
// pointer between saves.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/session"
	_ "modernc.org/sqlite"
)

// Store persists session state in a SQLite database.
type Store struct {
	db      *sql.DB
	factory core.SessionFactory

	mu    sync.Mutex
	cache map[string]*core.SessionState
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an ephemeral database.
func New(path string, factory core.SessionFactory) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if factory == nil {
		factory = session.DefaultFactory
	}
	s := &Store{db: db, factory: factory, cache: make(map[string]*core.SessionState)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		user_id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetOrCreate returns the cached state, loads it from the database, or creates
// and inserts a fresh one.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*core.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.cache[userID]; ok {
		return state, nil
	}

	state, err := s.load(ctx, userID)
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		state = s.factory(userID)
		if err := s.write(ctx, state); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		session.Reconcile(state, s.factory(userID))
	}
	s.cache[userID] = state
	return state, nil
}

// Save writes the state to the database.
func (s *Store) Save(ctx context.Context, state *core.SessionState) error {
	state.Touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[state.UserID] = state
	return s.write(ctx, state)
}

// List returns the stored user identifiers in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM sessions ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Load reads a stored state without creating one. It returns
// core.ErrSessionNotFound for unknown users.
func (s *Store) Load(ctx context.Context, userID string) (*core.SessionState, error) {
	return s.load(ctx, userID)
}

func (s *Store) load(ctx context.Context, userID string) (*core.SessionState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var state core.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", userID, err)
	}
	return &state, nil
}

func (s *Store) write(ctx context.Context, state *core.SessionState) error {
	snapshot := state.Clone()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.UserID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, state, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		snapshot.UserID, string(data), snapshot.Created.UTC(), time.Now().UTC(),
	)
	return err
}
