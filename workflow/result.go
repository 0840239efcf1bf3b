package workflow

import "github.com/hupe1980/slotmesh/core"

// ResultKind is the outcome of a Run.
type ResultKind int

const (
	// Completed means every agent was confirmed; the record is Ready.
	Completed ResultKind = iota
	// Abandoned means the user typed the exit token.
	Abandoned
	// SwitchRequested means the user asked for another workflow, which is now Ongoing.
	SwitchRequested
)

func (k ResultKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	case SwitchRequested:
		return "switch_requested"
	default:
		return "unknown"
	}
}

// Result is returned by Engine.Run.
type Result struct {
	Kind ResultKind
	// Intent is the switch target for SwitchRequested.
	Intent core.Intent
	// Fields is a copy of the record's fields when the run ended.
	Fields core.Fields
}
