package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/slotmesh/core"
)

// ExtractCall records one call to FakeExtractor.
type ExtractCall struct {
	Instruction string
	UserText    string
}

// FakeExtractor answers extractions from a table keyed by user text.
// Unknown texts yield an empty mapping, like a failed extraction.
type FakeExtractor struct {
	mu        sync.Mutex
	responses map[string]core.Fields
	calls     []ExtractCall
}

// NewFakeExtractor creates an empty FakeExtractor.
func NewFakeExtractor() *FakeExtractor {
	return &FakeExtractor{responses: map[string]core.Fields{}}
}

// On registers the fields returned for userText (chainable).
func (f *FakeExtractor) On(userText string, fields core.Fields) *FakeExtractor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[userText] = fields
	return f
}

// Extract implements core.Extractor.
func (f *FakeExtractor) Extract(_ context.Context, instruction, userText string) core.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ExtractCall{Instruction: instruction, UserText: userText})
	if r, ok := f.responses[userText]; ok {
		return r.Clone()
	}
	return core.Fields{}
}

// Calls returns the recorded calls.
func (f *FakeExtractor) Calls() []ExtractCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ExtractCall(nil), f.calls...)
}

// LastCall returns the most recent call.
func (f *FakeExtractor) LastCall() ExtractCall {
	calls := f.Calls()
	if len(calls) == 0 {
		return ExtractCall{}
	}
	return calls[len(calls)-1]
}

// FakeClassifier classifies by exact text first, then by keyword containment.
type FakeClassifier struct {
	mu       sync.Mutex
	exact    map[string]core.Intent
	keywords map[string]core.Intent
	calls    []string
}

// NewFakeClassifier creates an empty FakeClassifier.
func NewFakeClassifier() *FakeClassifier {
	return &FakeClassifier{exact: map[string]core.Intent{}, keywords: map[string]core.Intent{}}
}

// On maps an exact text to an intent (chainable).
func (c *FakeClassifier) On(text string, intent core.Intent) *FakeClassifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact[text] = intent
	return c
}

// OnKeyword maps any text containing keyword to an intent (chainable).
func (c *FakeClassifier) OnKeyword(keyword string, intent core.Intent) *FakeClassifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keywords[strings.ToLower(keyword)] = intent
	return c
}

// Classify implements core.Classifier.
func (c *FakeClassifier) Classify(_ context.Context, text string) core.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, text)
	if i, ok := c.exact[text]; ok {
		return i
	}
	lower := strings.ToLower(text)
	for k, i := range c.keywords {
		if strings.Contains(lower, k) {
			return i
		}
	}
	return core.IntentUnknown
}

// Calls returns every classified text.
func (c *FakeClassifier) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// ErrImageFailed is returned by FakeImageGenerator for scripted failures.
var ErrImageFailed = errors.New("image generation failed")

// FakeImageGenerator returns scripted results in order; once exhausted it
// keeps returning the last one.
type FakeImageGenerator struct {
	mu      sync.Mutex
	results []error
	ref     string
	calls   []string
}

// NewFakeImageGenerator creates a generator returning ref on success and
// failing for each true value in failures, in order.
func NewFakeImageGenerator(ref string, failures ...bool) *FakeImageGenerator {
	g := &FakeImageGenerator{ref: ref}
	for _, f := range failures {
		if f {
			g.results = append(g.results, ErrImageFailed)
		} else {
			g.results = append(g.results, nil)
		}
	}
	return g
}

// Generate implements core.ImageGenerator.
func (g *FakeImageGenerator) Generate(_ context.Context, description string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, description)
	var err error
	if n := len(g.calls); len(g.results) > 0 {
		if n <= len(g.results) {
			err = g.results[n-1]
		} else {
			err = g.results[len(g.results)-1]
		}
	}
	if err != nil {
		return "", err
	}
	return g.ref, nil
}

// Calls returns every description passed to Generate.
func (g *FakeImageGenerator) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Prompter is an agent.Prompter over a ScriptedChannel.
type Prompter struct {
	Channel *ScriptedChannel
}

// Ask writes text and reads the answer; the exit token yields core.ErrAbandoned.
func (p Prompter) Ask(ctx context.Context, text string) (string, error) {
	if err := p.Channel.WriteLine(ctx, text); err != nil {
		return "", err
	}
	line, err := p.Channel.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(line), "exit") {
		return "", core.ErrAbandoned
	}
	return line, nil
}

// Say writes text.
func (p Prompter) Say(ctx context.Context, text string) error {
	return p.Channel.WriteLine(ctx, text)
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
