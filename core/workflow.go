package core

import (
	"fmt"
	"slices"
)

// WorkflowRecord is the per-user state of one logical task such as
// "plan event". Schema lists the field names the record accepts; Fields holds
// their current values.
type WorkflowRecord struct {
	Key    WorkflowKey `json:"workflow"`
	Status Status      `json:"status"`
	Schema []string    `json:"schema"`
	Fields Fields      `json:"fields"`
	// Confirmed lists the agents whose fields the user accepted, in order.
	Confirmed []string `json:"confirmed,omitempty"`
}

// NewWorkflowRecord creates a Stopped record with every schema field unset.
func NewWorkflowRecord(key WorkflowKey, schema ...string) *WorkflowRecord {
	fields := make(Fields, len(schema))
	for _, name := range schema {
		fields[name] = ""
	}
	return &WorkflowRecord{Key: key, Status: StatusStopped, Schema: slices.Clone(schema), Fields: fields}
}

// Get returns the value of name ("" when unset).
func (r *WorkflowRecord) Get(name string) string { return r.Fields[name] }

// Set assigns value to name. Names outside the schema are rejected.
func (r *WorkflowRecord) Set(name, value string) error {
	if !slices.Contains(r.Schema, name) {
		return fmt.Errorf("%w: %q in workflow %s", ErrUnknownField, name, r.Key)
	}
	if r.Fields == nil {
		r.Fields = Fields{}
	}
	r.Fields[name] = value
	return nil
}

// IsConfirmed reports whether agent was confirmed.
func (r *WorkflowRecord) IsConfirmed(agent string) bool { return slices.Contains(r.Confirmed, agent) }

// Confirm marks agent as confirmed.
func (r *WorkflowRecord) Confirm(agent string) {
	if !r.IsConfirmed(agent) {
		r.Confirmed = append(r.Confirmed, agent)
	}
}

// Unconfirm removes the confirmation of agent.
func (r *WorkflowRecord) Unconfirm(agent string) {
	r.Confirmed = slices.DeleteFunc(r.Confirmed, func(a string) bool { return a == agent })
}

// Clone returns a deep copy of the record.
func (r *WorkflowRecord) Clone() *WorkflowRecord {
	return &WorkflowRecord{
		Key:       r.Key,
		Status:    r.Status,
		Schema:    slices.Clone(r.Schema),
		Fields:    r.Fields.Clone(),
		Confirmed: slices.Clone(r.Confirmed),
	}
}
