// Package extract implements the Field Extraction Port on top of a language
// model. The model is instructed to reply with a JSON object; anything that
// does not parse yields an empty mapping, never an error.
package extract

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
)

// Options configures a ModelExtractor.
type Options struct {
	// Temperature used for extraction calls.
	Temperature float64
	// Timeout bounds one model call (0 disables).
	Timeout time.Duration
	// History supplies previous user turns as context (nil disables).
	History core.TranscriptStore
	// HistoryTurns is the number of previous user turns passed along.
	HistoryTurns int
	Logger       logging.Logger
}

// ModelExtractor implements core.Extractor.
type ModelExtractor struct {
	model model.Model
	opts  Options
}

// New creates a ModelExtractor.
func New(m model.Model, optFns ...func(o *Options)) *ModelExtractor {
	opts := Options{Temperature: 0.3, Timeout: 30 * time.Second, HistoryTurns: 4}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &ModelExtractor{model: m, opts: opts}
}

// Extract implements core.Extractor.
func (e *ModelExtractor) Extract(ctx context.Context, instruction, userText string) core.Fields {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	req := model.Request{Instructions: instruction, Messages: e.history(ctx, userText)}
	req = req.WithTemperature(e.opts.Temperature)

	start := time.Now()
	text, err := model.Complete(ctx, e.model, req)
	if err != nil {
		e.opts.Logger.Warn("extraction call failed", "error", err, "duration", time.Since(start))
		return core.Fields{}
	}
	fields, ok := ParseFields(text)
	if !ok {
		e.opts.Logger.Warn("extraction response is not a JSON object", "response", text)
		return core.Fields{}
	}
	e.opts.Logger.Debug("extraction completed", "fields", fields.Keys(), "duration", time.Since(start))
	return fields
}

// history returns previous user turns followed by the current input.
func (e *ModelExtractor) history(ctx context.Context, userText string) []model.Message {
	current := model.Message{Role: "user", Text: userText}
	userID := core.UserIDFrom(ctx)
	if e.opts.History == nil || e.opts.HistoryTurns <= 0 || userID == "" {
		return []model.Message{current}
	}
	turns, err := e.opts.History.History(userID, 0)
	if err != nil {
		return []model.Message{current}
	}
	var prior []model.Message
	for i := len(turns) - 1; i >= 0 && len(prior) < e.opts.HistoryTurns; i-- {
		t := turns[i]
		if t.Role != core.RoleUser || t.Text == userText {
			continue
		}
		prior = append([]model.Message{{Role: "user", Text: "Previous message: " + t.Text}}, prior...)
	}
	return append(prior, current)
}

// ParseFields decodes a model reply into Fields. It tolerates markdown code
// fences and surrounding prose, normalizes numbers and booleans to strings
// and drops null, empty and placeholder values. ok is false when no JSON
// object could be decoded.
func ParseFields(text string) (core.Fields, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return core.Fields{}, false
	}
	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return core.Fields{}, false
	}
	fields := make(core.Fields, len(raw))
	for k, v := range raw {
		if s, ok := normalize(v); ok {
			fields[k] = s
		}
	}
	return fields, true
}

func normalize(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s = strings.TrimSpace(val)
	case json.Number:
		s = val.String()
	case bool:
		s = strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		s = string(b)
	}
	switch strings.ToLower(s) {
	case "", "...", "null", "none", "n/a", "unknown":
		return "", false
	}
	return s, true
}
