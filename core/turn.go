package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a Turn.
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// Turn is one line exchanged on a Channel. After creation it should be treated
// as immutable.
type Turn struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Role      Role              `json:"role"`
	Text      string            `json:"text"`
	Workflow  WorkflowKey       `json:"workflow,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewTurn creates a turn with a fresh id and a UTC timestamp.
func NewTurn(userID string, role Role, text string) Turn {
	return Turn{ID: uuid.NewString(), UserID: userID, Role: role, Text: text, Timestamp: time.Now().UTC()}
}

// TranscriptStore records turns per user.
type TranscriptStore interface {
	Append(userID string, turn Turn) error
	History(userID string, limit int) ([]Turn, error)
	Search(userID, query string, limit int) ([]Turn, error)
}
