package core

// Status is the lifecycle state of a WorkflowRecord.
type Status string

const (
	// StatusStopped marks a workflow that is not being worked on.
	StatusStopped Status = "Stopped"
	// StatusOngoing marks the single workflow a user is currently working on.
	StatusOngoing Status = "Ongoing"
	// StatusReady marks a workflow whose agents all validated and were confirmed.
	StatusReady Status = "Ready"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusStopped, StatusOngoing, StatusReady:
		return true
	default:
		return false
	}
}
