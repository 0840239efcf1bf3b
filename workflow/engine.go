package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/decorate"
	"github.com/hupe1980/slotmesh/intent"
	"github.com/hupe1980/slotmesh/logging"
)

const (
	correctionNotice = "Sorry, I could not understand your correction. Please try again or type 'yes' to confirm."
	invalidNotice    = "Sorry, there was an error with your input. Please try again."
	// DefaultCompletionMessage is written when every agent is confirmed.
	DefaultCompletionMessage = "All required information has been collected!"
)

// Checkpoint persists the session after progress worth keeping.
type Checkpoint func(ctx context.Context, state *core.SessionState) error

// Options configures an Engine.
type Options struct {
	Extractor  core.Extractor
	Classifier core.Classifier
	// Trigger gates acquisition-phase classification. Confirmation-phase
	// answers are always classified.
	Trigger   core.SwitchTrigger
	Decorator core.Decorator
	Logger    logging.Logger
	// Clock provides "now" to instruction templates.
	Clock func() time.Time
	// RetainDraftOnSwitch keeps a validated, unconfirmed field set when the
	// user switches away during confirmation.
	RetainDraftOnSwitch bool
	// Checkpoint is called after every confirmed agent and on completion.
	Checkpoint Checkpoint
	// CompletionMessage replaces DefaultCompletionMessage.
	CompletionMessage string
}

// Engine runs one workflow's agent catalog against a channel.
type Engine struct {
	catalog agent.Catalog
	intent  core.Intent
	opts    Options
	logger  logging.Logger
}

// New creates an Engine for the workflow started by in.
func New(catalog agent.Catalog, in core.Intent, optFns ...func(o *Options)) (*Engine, error) {
	if err := catalog.Check(); err != nil {
		return nil, err
	}
	opts := Options{
		Trigger:           intent.NewKeywordTrigger(),
		Decorator:         decorate.None{},
		Logger:            logging.NoOpLogger{},
		Clock:             time.Now,
		CompletionMessage: DefaultCompletionMessage,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Extractor == nil {
		return nil, errors.New("workflow: extractor is required")
	}
	if opts.Classifier == nil {
		opts.Classifier = intent.HeuristicClassifier{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Engine{catalog: catalog, intent: in, opts: opts, logger: logging.OrNoOp(opts.Logger)}, nil
}

// Catalog returns the engine's agents.
func (e *Engine) Catalog() agent.Catalog { return e.catalog }

// Intent returns the intent this engine serves.
func (e *Engine) Intent() core.Intent { return e.intent }

// Run drives record through every agent of the catalog. Agents already
// confirmed with still-valid fields are skipped. A record whose agents are all
// confirmed (a finished earlier run) is reviewed again from the first agent.
func (e *Engine) Run(ctx context.Context, session *core.SessionState, record *core.WorkflowRecord, ch core.Channel) (Result, error) {
	if record.Fields == nil {
		record.Fields = core.Fields{}
	}
	if e.allConfirmed(record) {
		record.Confirmed = nil
	}
	start := time.Now()

	for _, spec := range e.catalog {
		if record.IsConfirmed(spec.Name) && spec.IsValid(record.Fields) {
			continue
		}
		record.Unconfirm(spec.Name)

		r := &agentRun{engine: e, spec: spec, session: session, record: record, ch: ch}
		end, err := r.run(ctx)
		if err != nil {
			return Result{}, err
		}

		switch end {
		case StateAbandoned:
			e.logger.Info("workflow abandoned", "workflow", record.Key, "agent", spec.Name, "duration", time.Since(start))
			return Result{Kind: Abandoned, Fields: record.Fields.Clone()}, nil
		case StateSwitchPending:
			e.logger.Info("workflow switch", "workflow", record.Key, "agent", spec.Name, "target", r.target)
			e.checkpoint(ctx, session)
			return Result{Kind: SwitchRequested, Intent: r.target, Fields: record.Fields.Clone()}, nil
		}

		record.Confirm(spec.Name)
		e.checkpoint(ctx, session)
	}

	if err := session.SetWorkflowStatus(record.Key, core.StatusReady); err != nil {
		return Result{}, err
	}
	if err := e.writeCompletion(ctx, ch, record.Fields); err != nil {
		return Result{}, err
	}
	e.checkpoint(ctx, session)
	e.logger.Info("workflow completed", "workflow", record.Key, "agents", len(e.catalog), "duration", time.Since(start))
	return Result{Kind: Completed, Fields: record.Fields.Clone()}, nil
}

func (e *Engine) allConfirmed(record *core.WorkflowRecord) bool {
	if len(record.Confirmed) == 0 {
		return false
	}
	for _, s := range e.catalog {
		if !record.IsConfirmed(s.Name) {
			return false
		}
	}
	return true
}

func (e *Engine) checkpoint(ctx context.Context, session *core.SessionState) {
	if e.opts.Checkpoint == nil {
		return
	}
	if err := e.opts.Checkpoint(ctx, session); err != nil {
		e.logger.Warn("checkpoint failed", "user", session.UserID, "error", err)
	}
}

func (e *Engine) writeCompletion(ctx context.Context, ch core.Channel, fields core.Fields) error {
	if err := ch.WriteLine(ctx, e.opts.CompletionMessage); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fields.Subset(e.catalog.Schema()), "", "  ")
	if err != nil {
		return fmt.Errorf("encode final data: %w", err)
	}
	return ch.WriteLine(ctx, "Final Data: "+string(data))
}

// templateData is the extra data handed to instruction templates.
func (e *Engine) templateData() map[string]any {
	return map[string]any{"now": e.opts.Clock().Format("2006-01-02 15:04 (Monday)")}
}
