package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNoResponse is returned by Complete when a model closes its channels
// without producing a final response.
var ErrNoResponse = errors.New("model returned no response")

// Message is a single role-tagged conversational message.
type Message struct {
	Role string `json:"role"` // user, assistant
	Text string `json:"text"`
}

// Request captures the normalized model input produced by the ports.
type Request struct {
	Instructions string    `json:"instructions"` // System instructions for the model
	Messages     []Message `json:"messages"`
	Temperature  *float64  `json:"temperature,omitempty"` // Overrides the adapter default
}

// NewRequest builds a request with instructions and a single user message.
func NewRequest(instructions, userText string) Request {
	return Request{Instructions: instructions, Messages: []Message{{Role: "user", Text: userText}}}
}

// WithTemperature returns a copy of the request with the temperature set.
func (r Request) WithTemperature(t float64) Request {
	r.Temperature = &t
	return r
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion emitted by a model.
type Response struct {
	ID           string      `json:"id"`
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the ports to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Complete drains Generate and returns the trimmed text of the final response.
func Complete(ctx context.Context, m Model, req Request) (string, error) {
	out, errCh := m.Generate(ctx, req)
	var (
		text string
		got  bool
	)
	for out != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case resp, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			text, got = resp.Text, true
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return "", err
			}
		}
	}
	if !got {
		return "", ErrNoResponse
	}
	return strings.TrimSpace(text), nil
}

// MockModel is a lightweight in‑memory Model useful for tests & examples.
// Responses are matched on the last user message, optionally narrowed by
// instructions. Unmatched input yields "Mock response to: <input>".
type MockModel struct {
	info      Info
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// AddInstructedResponse registers a completion for a prompt under specific instructions.
// It takes precedence over AddResponse for the same prompt.
func (m *MockModel) AddInstructedResponse(instructions, prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[instructions+"\x00"+prompt] = response
}

// FailWith makes every subsequent Generate call fail with err (nil restores normal behaviour).
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of the requests seen so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 1)
	errCh := make(chan error, 1)

	m.mu.Lock()
	m.requests = append(m.requests, req)
	failure := m.err
	var inputText string
	if len(req.Messages) > 0 {
		inputText = req.Messages[len(req.Messages)-1].Text
	}
	full, ok := m.responses[req.Instructions+"\x00"+inputText]
	if !ok {
		full = m.responses[inputText]
	}
	m.mu.Unlock()

	go func() {
		defer close(respCh)
		defer close(errCh)
		if err := ctx.Err(); err != nil {
			errCh <- err
			return
		}
		if failure != nil {
			errCh <- failure
			return
		}
		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		if full == "" {
			full = fmt.Sprintf("Mock response to: %s", inputText)
		}
		respCh <- Response{Text: full, FinishReason: "stop"}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
