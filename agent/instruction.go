package agent

import (
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/internal/util"
)

// Provider supplies dynamic instruction text at runtime from the current data
// (the workflow fields plus engine-provided values such as "now").
type Provider interface {
	Instruction(data map[string]any) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(data map[string]any) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(data map[string]any) (string, error) { return f(data) }

// Instruction represents either a static (templated) instruction string or a
// dynamic provider. This mirrors a union of string | provider in a Go-idiomatic way.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a text/template string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(data map[string]any) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// IsZero reports whether no instruction was configured.
func (i Instruction) IsZero() bool { return i.provider == nil && i.text == "" }

// Resolve returns the instruction text, invoking the provider or rendering
// the template against data.
func (i Instruction) Resolve(data map[string]any) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(data)
	}
	return util.RenderTemplate(i.text, data)
}

// TemplateData builds the data passed to instructions: every field value plus extra.
func TemplateData(fields core.Fields, extra map[string]any) map[string]any {
	data := make(map[string]any, len(fields)+len(extra))
	for k, v := range fields {
		data[k] = v
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
