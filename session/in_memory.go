package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/slotmesh/core"
)

// Options configures an InMemoryStore.
type Options struct {
	// Factory builds the initial state on first contact (defaults to DefaultFactory).
	Factory core.SessionFactory
	// TTL evicts sessions not updated for longer than this (0 disables eviction).
	TTL time.Duration
	// Now is the clock used for TTL checks.
	Now func() time.Time
}

// InMemoryStore is a volatile SessionStore implementation storing state in a
// process local map. It is safe for concurrent access. Unlike persistent
// stores it hands out the live *core.SessionState so engine mutations are
// visible without an explicit Save.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.SessionState
	opts     Options
}

// NewInMemoryStore constructs an empty in‑memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{Factory: DefaultFactory, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{sessions: make(map[string]*core.SessionState), opts: opts}
}

// GetOrCreate returns the user's state, creating it lazily. Expired states are
// replaced by a fresh one.
func (s *InMemoryStore) GetOrCreate(_ context.Context, userID string) (*core.SessionState, error) {
	s.mu.RLock()
	state, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok && !s.expired(state) {
		return state, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[userID]; ok && !s.expired(state) {
		return state, nil
	}
	state = s.opts.Factory(userID)
	s.sessions[userID] = state
	return state, nil
}

// Save stores the given state pointer and refreshes its Updated timestamp.
func (s *InMemoryStore) Save(_ context.Context, state *core.SessionState) error {
	state.Touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.UserID] = state
	return nil
}

// List returns the sorted user identifiers of live sessions.
func (s *InMemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id, state := range s.sessions {
		if !s.expired(state) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Sweep evicts expired sessions and returns how many were removed.
func (s *InMemoryStore) Sweep() int {
	if s.opts.TTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, state := range s.sessions {
		if s.expired(state) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *InMemoryStore) expired(state *core.SessionState) bool {
	if s.opts.TTL <= 0 {
		return false
	}
	return s.opts.Now().Sub(state.LastUpdated()) > s.opts.TTL
}
