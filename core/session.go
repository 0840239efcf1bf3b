package core

import (
	"context"
	"sync"
	"time"
)

// SessionState is the ordered set of workflow records belonging to one user.
//
// Contract:
//   - At most one record has StatusOngoing after any SetWorkflowStatus call
//   - Records are created up front; workflows cannot be added later
//   - Clone performs a deep copy for safe divergence (persistence, inspection).
type SessionState struct {
	UserID  string            `json:"user_id"`
	Records []*WorkflowRecord `json:"records"`
	Created time.Time         `json:"created"`
	Updated time.Time         `json:"updated"`
	mu      sync.RWMutex
}

// NewSessionState creates a session state for userID holding the given records.
func NewSessionState(userID string, records ...*WorkflowRecord) *SessionState {
	now := time.Now()
	return &SessionState{UserID: userID, Records: records, Created: now, Updated: now}
}

// Record returns the record for key or nil.
func (s *SessionState) Record(key WorkflowKey) *WorkflowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.Records {
		if r.Key == key {
			return r
		}
	}
	return nil
}

// Current returns the Ongoing record or nil when the user is at the menu.
func (s *SessionState) Current() *WorkflowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.Records {
		if r.Status == StatusOngoing {
			return r
		}
	}
	return nil
}

// SetWorkflowStatus sets the status of key and stops every other record.
// It fails with ErrUnknownWorkflow (leaving state untouched) if key is not present.
func (s *SessionState) SetWorkflowStatus(key WorkflowKey, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, r := range s.Records {
		if r.Key == key {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownWorkflow
	}
	for _, r := range s.Records {
		if r.Key == key {
			r.Status = status
		} else {
			r.Status = StatusStopped
		}
	}
	s.Updated = time.Now()
	return nil
}

// Touch updates the Updated timestamp.
func (s *SessionState) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updated = time.Now()
}

// LastUpdated returns the Updated timestamp.
func (s *SessionState) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Updated
}

// Clone returns a deep copy of the session state except the mutex.
func (s *SessionState) Clone() *SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &SessionState{UserID: s.UserID, Records: make([]*WorkflowRecord, len(s.Records)), Created: s.Created, Updated: s.Updated}
	for i, r := range s.Records {
		clone.Records[i] = r.Clone()
	}
	return clone
}

// SessionFactory builds the initial state for a user seen for the first time.
type SessionFactory func(userID string) *SessionState

// SessionStore maps user identifiers to session state. Implementations must be
// safe for concurrent use across users.
type SessionStore interface {
	// GetOrCreate returns the user's state, creating it on first contact.
	GetOrCreate(ctx context.Context, userID string) (*SessionState, error)
	// Save persists the state. Volatile stores may treat this as a no-op.
	Save(ctx context.Context, state *SessionState) error
	// List returns the known user identifiers.
	List(ctx context.Context) ([]string, error)
}
