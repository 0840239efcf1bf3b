// Package workflow implements the Workflow Engine: the per-agent slot-filling
// loop that walks a user through an ordered agent.Catalog.
//
// # State machine
//
// Each agent is driven by an explicit finite-state machine:
//
//	Validating ──► Prompting ──► Extracting ──► Validating
//	    │              │
//	    │              ├──► SwitchPending (terminal, SwitchRequested)
//	    │              └──► Abandoned     (terminal)
//	    └──► Confirming ──► Done          (terminal, next agent)
//	            │    ├────► Correcting ──► Validating | Confirming
//	            │    └────► SwitchPending
//	            └─────────► Abandoned
//
// Every agent enters in Validating, so a resumed workflow (after a switch or
// a restart) picks up where the stored fields left it. The legal transitions
// are listed in a single table; the engine refuses anything else.
//
// # Data rules
//
//   - Extraction only writes input fields that are still unset.
//   - A complete but invalid field set is cleared as a whole before the next prompt.
//   - A correction that changes any input field clears the agent's derived fields.
//   - A switch discards the current agent's fields; confirmed agents are kept.
//     With Options.RetainDraftOnSwitch a validated draft from the confirmation
//     phase survives and is offered for confirmation again on return.
//
// # Outcomes
//
// Run returns a Result of kind Completed, Abandoned or SwitchRequested. Errors
// are reserved for transport failures such as core.ErrInputClosed.
package workflow
