// Package decorate implements the Decoration Port: a short emoji prefix for
// prompts. Decoration is cosmetic, so every failure degrades to "".
package decorate

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
)

// DefaultInstruction asks for emoji only.
const DefaultInstruction = "Given a short context or question, reply with only the most relevant emoji or emoji sequence (no text, no explanation)."

// Options configures a ModelDecorator.
type Options struct {
	Instruction string
	Timeout     time.Duration
	// MaxRunes drops replies longer than this (the model ignored the instruction).
	MaxRunes int
	Logger   logging.Logger
}

// ModelDecorator implements core.Decorator with a language model. Results are
// cached per text since prompts repeat across users.
type ModelDecorator struct {
	model model.Model
	opts  Options
	cache sync.Map
}

// New creates a ModelDecorator.
func New(m model.Model, optFns ...func(o *Options)) *ModelDecorator {
	opts := Options{Instruction: DefaultInstruction, Timeout: 10 * time.Second, MaxRunes: 8}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &ModelDecorator{model: m, opts: opts}
}

// Decorate implements core.Decorator.
func (d *ModelDecorator) Decorate(ctx context.Context, text string) string {
	if v, ok := d.cache.Load(text); ok {
		return v.(string)
	}
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}
	reply, err := model.Complete(ctx, d.model, model.NewRequest(d.opts.Instruction, text).WithTemperature(0.2))
	if err != nil {
		d.opts.Logger.Debug("decoration failed", "error", err)
		return ""
	}
	reply = strings.TrimSpace(reply)
	if d.opts.MaxRunes > 0 && utf8.RuneCountInString(reply) > d.opts.MaxRunes {
		return ""
	}
	d.cache.Store(text, reply)
	return reply
}

// None is a Decorator that never decorates.
type None struct{}

// Decorate implements core.Decorator.
func (None) Decorate(context.Context, string) string { return "" }

// Static always returns the same decoration.
type Static string

// Decorate implements core.Decorator.
func (s Static) Decorate(context.Context, string) string { return string(s) }

// Prefix renders "<decoration> <text>", or text alone when d yields nothing.
func Prefix(ctx context.Context, d core.Decorator, text string) string {
	if d == nil {
		return text
	}
	if deco := d.Decorate(ctx, text); deco != "" {
		return deco + " " + text
	}
	return text
}
