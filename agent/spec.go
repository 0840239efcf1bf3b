package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/slotmesh/core"
)

// Validator reports whether a field set is complete and acceptable.
type Validator func(core.Fields) bool

// Confirmer renders a human-readable summary for yes/no confirmation.
type Confirmer func(core.Fields) string

// Prompter lets a Resolver talk to the user mid-validation.
type Prompter interface {
	// Ask writes text and returns the next line of input.
	// It returns core.ErrAbandoned when the user types the exit token.
	Ask(ctx context.Context, text string) (string, error)
	// Say writes text without waiting for input.
	Say(ctx context.Context, text string) error
}

// Resolver derives fields that are not extracted from user text (see Spec.Derived).
// It runs before every validation and must be idempotent.
type Resolver interface {
	Resolve(ctx context.Context, fields core.Fields, p Prompter) error
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, fields core.Fields, p Prompter) error

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, fields core.Fields, p Prompter) error {
	return f(ctx, fields, p)
}

// Spec is an immutable Agent Specification.
type Spec struct {
	// Name is unique within a catalog.
	Name string
	// Fields lists every field this agent owns, in prompt order.
	Fields []string
	// Labels optionally maps field names to user-facing names.
	Labels map[string]string
	// Prompt is shown when every required field is missing.
	Prompt string
	// Instruction is passed to the extractor when every required field is missing.
	Instruction Instruction
	// Validate must be total and true only for a complete, acceptable set.
	// Nil means "every required field is set".
	Validate Validator
	// Confirm renders the confirmation summary.
	Confirm Confirmer
	// Required returns the fields currently required. Nil means all non-derived fields.
	Required func(core.Fields) []string
	// Derived fields are produced by Resolver, never by extraction.
	Derived []string
	// MissingNotice replaces the generic "you missed" notice when set.
	MissingNotice string
	// Resolver optionally derives fields before validation.
	Resolver Resolver
}

// Inputs returns the fields filled from user text (Fields minus Derived).
func (s Spec) Inputs() []string {
	inputs := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !slices.Contains(s.Derived, f) {
			inputs = append(inputs, f)
		}
	}
	return inputs
}

// RequiredFields returns the fields required given the current values.
func (s Spec) RequiredFields(f core.Fields) []string {
	if s.Required != nil {
		return s.Required(f)
	}
	return s.Inputs()
}

// Missing returns the required fields that are unset.
func (s Spec) Missing(f core.Fields) []string {
	return f.Missing(s.RequiredFields(f))
}

// Writable returns the input fields an extraction may fill: the ones still unset.
func (s Spec) Writable(f core.Fields) []string {
	return f.Missing(s.Inputs())
}

// IsValid runs Validate, treating a panicking validator as a failed validation.
func (s Spec) IsValid(f core.Fields) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if s.Validate == nil {
		return len(s.Missing(f)) == 0
	}
	return s.Validate(f.Subset(s.Fields))
}

// Summary renders the confirmation message.
func (s Spec) Summary(f core.Fields) string {
	if s.Confirm == nil {
		var b strings.Builder
		for _, name := range s.Fields {
			fmt.Fprintf(&b, "%s: %s\n", s.Label(name), f[name])
		}
		b.WriteString("Is this correct? (yes/no)")
		return b.String()
	}
	return s.Confirm(f.Subset(s.Fields))
}

// Label returns the user-facing name of a field.
func (s Spec) Label(name string) string {
	if l, ok := s.Labels[name]; ok && l != "" {
		return l
	}
	return name
}

func (s Spec) labels(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = s.Label(n)
	}
	return strings.Join(out, ", ")
}

// PromptFor returns the full prompt when every required field is missing,
// otherwise a reduced prompt naming only the missing ones.
func (s Spec) PromptFor(f core.Fields, missing []string) string {
	if len(missing) >= len(s.RequiredFields(f)) {
		return s.Prompt
	}
	return "Please provide the following information: " + s.labels(missing) + "."
}

// ExtractionInstruction returns the instruction scoped to the missing fields:
// the agent's own instruction when nothing required is set yet (multi-input
// agents only), a one-field instruction for a single gap, and a joint
// instruction naming exactly the missing fields otherwise.
func (s Spec) ExtractionInstruction(f core.Fields, missing []string, extra map[string]any) (string, error) {
	full := len(missing) >= len(s.RequiredFields(f))
	switch {
	case full && len(s.Inputs()) > 1 && !s.Instruction.IsZero():
		return s.Instruction.Resolve(TemplateData(f, extra))
	case len(missing) == 1:
		return SingleFieldInstruction(missing[0]), nil
	default:
		return JointInstruction("Extract the following fields from the user input.", missing), nil
	}
}

// CorrectionInstruction returns the instruction used on a confirmation-phase rebuttal.
func (s Spec) CorrectionInstruction() string {
	inputs := s.Inputs()
	if len(inputs) == 1 {
		return SingleFieldInstruction(inputs[0])
	}
	return JointInstruction("Extract any updated or corrected fields from the user input. Omit fields the user did not mention.", inputs)
}

// Notice returns the message shown when fields are still missing after extraction.
func (s Spec) Notice(missing []string) string {
	if s.MissingNotice != "" {
		return s.MissingNotice
	}
	return "Sorry, you missed: " + s.labels(missing) + ". Please provide all required information before continuing."
}

// SingleFieldInstruction asks for exactly one field.
func SingleFieldInstruction(name string) string {
	return fmt.Sprintf(`Extract the %s from the user input. Reply as JSON: {"%s": "..."}`, name, name)
}

// JointInstruction asks for exactly the given fields.
func JointInstruction(lead string, names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf(`"%s": "..."`, n)
	}
	return fmt.Sprintf("%s Reply as JSON: {%s}", lead, strings.Join(parts, ", "))
}

// ErrDuplicateField is returned by Catalog.Check when two agents claim one field.
var ErrDuplicateField = errors.New("field claimed by more than one agent")

// ErrDuplicateAgent is returned by Catalog.Check for repeated agent names.
var ErrDuplicateAgent = errors.New("duplicate agent name")

// Catalog is an ordered list of agent specifications for one workflow.
type Catalog []Spec

// Check validates catalog-wide invariants.
func (c Catalog) Check() error {
	owners := map[string]string{}
	names := map[string]bool{}
	for _, s := range c {
		if s.Name == "" || len(s.Fields) == 0 {
			return fmt.Errorf("agent %q: name and fields are required", s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateAgent, s.Name)
		}
		names[s.Name] = true
		for _, f := range s.Fields {
			if owner, ok := owners[f]; ok {
				return fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateField, f, owner, s.Name)
			}
			owners[f] = s.Name
		}
	}
	return nil
}

// Schema returns every field name in catalog order.
func (c Catalog) Schema() []string {
	var out []string
	for _, s := range c {
		out = append(out, s.Fields...)
	}
	return out
}

// Find returns the spec with the given name.
func (c Catalog) Find(name string) (Spec, bool) {
	for _, s := range c {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
