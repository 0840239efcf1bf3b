package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/hupe1980/slotmesh/core"
)

// ScriptedChannel replays a fixed list of user lines and records every line
// written to it. Once the script is exhausted ReadLine returns core.ErrInputClosed.
type ScriptedChannel struct {
	mu     sync.Mutex
	input  []string
	output []string
}

// NewScriptedChannel creates a channel that will answer reads with lines in order.
func NewScriptedChannel(lines ...string) *ScriptedChannel {
	return &ScriptedChannel{input: append([]string(nil), lines...)}
}

// ReadLine implements core.Channel.
func (c *ScriptedChannel) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.input) == 0 {
		return "", core.ErrInputClosed
	}
	line := c.input[0]
	c.input = c.input[1:]
	return line, nil
}

// WriteLine implements core.Channel.
func (c *ScriptedChannel) WriteLine(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output = append(c.output, text)
	return nil
}

// Feed appends more user lines to the script.
func (c *ScriptedChannel) Feed(lines ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = append(c.input, lines...)
}

// Output returns a copy of everything written so far.
func (c *ScriptedChannel) Output() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.output...)
}

// Transcript returns the output joined by newlines.
func (c *ScriptedChannel) Transcript() string {
	return strings.Join(c.Output(), "\n")
}

// Remaining returns the number of unread lines.
func (c *ScriptedChannel) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.input)
}
