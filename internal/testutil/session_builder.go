package testutil

import (
	"github.com/hupe1980/slotmesh/core"
)

// SessionBuilder helps construct session states with fluent chaining for tests.
// Example:
//
//	s := NewSessionBuilder("u1").Workflow(core.WorkflowPlanEvent, "venue").Field(core.WorkflowPlanEvent, "venue", "Park").Build()
type SessionBuilder struct {
	userID  string
	records []*core.WorkflowRecord
}

// NewSessionBuilder creates a new builder for the given user.
func NewSessionBuilder(userID string) *SessionBuilder {
	return &SessionBuilder{userID: userID}
}

// Workflow appends a Stopped record with the given schema (chainable).
func (b *SessionBuilder) Workflow(key core.WorkflowKey, schema ...string) *SessionBuilder {
	b.records = append(b.records, core.NewWorkflowRecord(key, schema...))
	return b
}

// Field sets a field on a previously added record (chainable). Unknown
// records or fields panic, since that is a broken test.
func (b *SessionBuilder) Field(key core.WorkflowKey, name, value string) *SessionBuilder {
	if err := b.record(key).Set(name, value); err != nil {
		panic(err)
	}
	return b
}

// Status sets the raw status of a record without touching the others (chainable).
func (b *SessionBuilder) Status(key core.WorkflowKey, status core.Status) *SessionBuilder {
	b.record(key).Status = status
	return b
}

// Confirmed marks agents as confirmed on a record (chainable).
func (b *SessionBuilder) Confirmed(key core.WorkflowKey, agents ...string) *SessionBuilder {
	r := b.record(key)
	for _, a := range agents {
		r.Confirm(a)
	}
	return b
}

// Build returns the session state.
func (b *SessionBuilder) Build() *core.SessionState {
	return core.NewSessionState(b.userID, b.records...)
}

// Factory returns a SessionFactory that builds a fresh copy of this state for any user.
func (b *SessionBuilder) Factory() core.SessionFactory {
	return func(userID string) *core.SessionState {
		s := b.Build().Clone()
		s.UserID = userID
		return s
	}
}

func (b *SessionBuilder) record(key core.WorkflowKey) *core.WorkflowRecord {
	for _, r := range b.records {
		if r.Key == key {
			return r
		}
	}
	panic("testutil: unknown workflow " + string(key))
}
