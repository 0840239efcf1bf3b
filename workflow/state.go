package workflow

import (
	"fmt"
	"slices"
)

// State is a node of the per-agent state machine.
type State int

const (
	StatePrompting State = iota
	StateExtracting
	StateValidating
	StateConfirming
	StateCorrecting
	StateSwitchPending
	StateDone
	StateAbandoned
)

var stateNames = [...]string{
	StatePrompting:     "Prompting",
	StateExtracting:    "Extracting",
	StateValidating:    "Validating",
	StateConfirming:    "Confirming",
	StateCorrecting:    "Correcting",
	StateSwitchPending: "SwitchPending",
	StateDone:          "Done",
	StateAbandoned:     "Abandoned",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the state ends the agent's run.
func (s State) Terminal() bool {
	return s == StateSwitchPending || s == StateDone || s == StateAbandoned
}

// transitions is the complete table of legal moves.
var transitions = map[State][]State{
	StateValidating: {StatePrompting, StateConfirming, StateAbandoned},
	StatePrompting:  {StateExtracting, StateSwitchPending, StateAbandoned},
	StateExtracting: {StateValidating},
	StateConfirming: {StateDone, StateCorrecting, StateSwitchPending, StateAbandoned},
	StateCorrecting: {StateValidating, StateConfirming},
}

// CanTransition reports whether from → to is a legal transition.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

// ErrIllegalTransition is returned when a step produces a transition outside the table.
type ErrIllegalTransition struct {
	From, To State
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("workflow: illegal transition %s -> %s", e.From, e.To)
}
