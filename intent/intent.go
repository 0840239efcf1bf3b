// Package intent implements the Intent Classification Port and the pluggable
// switch-trigger predicate consulted before classification.
package intent

import (
	"context"
	"strings"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
)

// DefaultInstruction asks the model for one of the known intent phrases.
const DefaultInstruction = `Classify the user intent as one of: "plan event", "discover event", "go live streaming". ` +
	`Be flexible - accept variations like "plan an event" or "I want to plan event". ` +
	`If none applies reply with "none". Reply with only the exact intent phrase.`

// Options configures a ModelClassifier.
type Options struct {
	Instruction string
	Timeout     time.Duration
	Logger      logging.Logger
}

// ModelClassifier implements core.Classifier with a language model and
// normalizes free-form replies with substring heuristics.
type ModelClassifier struct {
	model model.Model
	opts  Options
}

// New creates a ModelClassifier.
func New(m model.Model, optFns ...func(o *Options)) *ModelClassifier {
	opts := Options{Instruction: DefaultInstruction, Timeout: 30 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &ModelClassifier{model: m, opts: opts}
}

// Classify implements core.Classifier. When the model call fails the user's
// own text is run through the heuristics instead.
func (c *ModelClassifier) Classify(ctx context.Context, userText string) core.Intent {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	reply, err := model.Complete(ctx, c.model, model.NewRequest(c.opts.Instruction, userText).WithTemperature(0))
	if err != nil {
		c.opts.Logger.Warn("intent classification failed, using heuristics", "error", err)
		return Normalize(userText)
	}
	got := Normalize(reply)
	c.opts.Logger.Debug("intent classified", "reply", reply, "intent", string(got))
	return got
}

// Normalize maps free-form text onto a known intent:
// "plan"+"event" → plan event, "discover"+"event" → discover event,
// "live" or "stream" → go live streaming. Exact intent phrases always match.
func Normalize(text string) core.Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.Trim(t, `"'.!`)
	for _, i := range core.Intents {
		if t == string(i) {
			return i
		}
	}
	switch {
	case strings.Contains(t, "plan") && strings.Contains(t, "event"):
		return core.IntentPlanEvent
	case strings.Contains(t, "discover") && strings.Contains(t, "event"):
		return core.IntentDiscoverEvent
	case strings.Contains(t, "live") || strings.Contains(t, "stream"):
		return core.IntentLiveStreaming
	default:
		return core.IntentUnknown
	}
}

// HeuristicClassifier classifies with Normalize only. It needs no model and
// serves offline setups and tests.
type HeuristicClassifier struct{}

// Classify implements core.Classifier.
func (HeuristicClassifier) Classify(_ context.Context, userText string) core.Intent {
	return Normalize(userText)
}
