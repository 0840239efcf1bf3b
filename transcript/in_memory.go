package transcript

import (
	"strings"
	"sync"

	"github.com/hupe1980/slotmesh/core"
)

// InMemoryStore is a naive process‑local TranscriptStore. It offers:
//  1. Append‑only per-user turn history (Append / History)
//  2. Case-insensitive substring Search over turn text
//
// Concurrency: protected by RWMutex. MaxTurns bounds the retained history per
// user (0 keeps everything); the oldest turns are dropped first.
type InMemoryStore struct {
	mu       sync.RWMutex
	turns    map[string][]core.Turn
	maxTurns int
}

// NewInMemoryStore creates a new in-memory transcript store.
func NewInMemoryStore(maxTurns int) *InMemoryStore {
	return &InMemoryStore{turns: make(map[string][]core.Turn), maxTurns: maxTurns}
}

// Append records a turn for the user.
func (s *InMemoryStore) Append(userID string, turn core.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.turns[userID], turn)
	if s.maxTurns > 0 && len(turns) > s.maxTurns {
		turns = append([]core.Turn(nil), turns[len(turns)-s.maxTurns:]...)
	}
	s.turns[userID] = turns
	return nil
}

// History returns up to limit most recent turns in chronological order
// (limit <= 0 returns all).
func (s *InMemoryStore) History(userID string, limit int) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.turns[userID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Search returns up to limit turns whose text contains query, oldest first.
func (s *InMemoryStore) Search(userID, query string, limit int) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	results := make([]core.Turn, 0)
	for _, t := range s.turns[userID] {
		if limit > 0 && len(results) >= limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(t.Text), q) {
			results = append(results, t)
		}
	}
	return results, nil
}
