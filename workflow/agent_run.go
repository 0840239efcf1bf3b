package workflow

import (
	"context"
	"errors"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/decorate"
)

// agentRun holds the in-flight state of one agent.
type agentRun struct {
	engine  *Engine
	spec    agent.Spec
	session *core.SessionState
	record  *core.WorkflowRecord
	ch      core.Channel

	missing    []string
	input      string
	extracted  bool // Validating was entered after an extraction or correction
	target     core.Intent
	confirming bool // the switch came from the confirmation phase
}

func (r *agentRun) fields() core.Fields { return r.record.Fields }

// run executes the state machine until a terminal state.
func (r *agentRun) run(ctx context.Context) (State, error) {
	state := StateValidating
	for !state.Terminal() {
		next, err := r.step(ctx, state)
		if err != nil {
			return state, err
		}
		if !CanTransition(state, next) {
			return state, &ErrIllegalTransition{From: state, To: next}
		}
		r.engine.logger.Debug("workflow transition", "agent", r.spec.Name, "from", state, "to", next)
		state = next
	}
	if state == StateSwitchPending {
		return state, r.switchTo(ctx)
	}
	return state, nil
}

func (r *agentRun) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateValidating:
		return r.validate(ctx)
	case StatePrompting:
		return r.prompt(ctx)
	case StateExtracting:
		return r.extract(ctx)
	case StateConfirming:
		return r.confirm(ctx)
	case StateCorrecting:
		return r.correct(ctx)
	default:
		return state, &ErrIllegalTransition{From: state, To: state}
	}
}

func (r *agentRun) validate(ctx context.Context) (State, error) {
	afterInput := r.extracted
	r.extracted = false

	if r.spec.Resolver != nil {
		err := r.spec.Resolver.Resolve(ctx, r.fields(), &channelPrompter{ch: r.ch})
		if errors.Is(err, core.ErrAbandoned) {
			return StateAbandoned, nil
		}
		if err != nil {
			return StateValidating, err
		}
	}

	r.missing = r.spec.Missing(r.fields())
	if len(r.missing) > 0 {
		if afterInput {
			return StatePrompting, r.say(ctx, r.spec.Notice(r.missing))
		}
		return StatePrompting, nil
	}
	if r.spec.IsValid(r.fields()) {
		return StateConfirming, nil
	}

	// Complete but invalid: start the agent over.
	r.fields().Unset(r.spec.Fields...)
	r.missing = r.spec.Missing(r.fields())
	notice := invalidNotice
	if r.spec.MissingNotice != "" {
		notice = r.spec.MissingNotice
	}
	return StatePrompting, r.say(ctx, notice)
}

func (r *agentRun) prompt(ctx context.Context) (State, error) {
	text := r.spec.PromptFor(r.fields(), r.missing)
	line, err := r.ask(ctx, decorate.Prefix(ctx, r.engine.opts.Decorator, text))
	if err != nil {
		return StatePrompting, err
	}
	if agent.IsExit(line) {
		return StateAbandoned, nil
	}
	if r.engine.opts.Trigger != nil && r.engine.opts.Trigger.Matches(line) && r.wantsSwitch(ctx, line) {
		return StateSwitchPending, nil
	}
	r.input = line
	return StateExtracting, nil
}

func (r *agentRun) extract(ctx context.Context) (State, error) {
	instruction, err := r.spec.ExtractionInstruction(r.fields(), r.missing, r.engine.templateData())
	if err != nil {
		r.engine.logger.Warn("instruction render failed", "agent", r.spec.Name, "error", err)
		instruction = agent.JointInstruction("Extract the following fields from the user input.", r.missing)
	}

	got := r.engine.opts.Extractor.Extract(ctx, instruction, r.input)
	for _, name := range r.spec.Writable(r.fields()) {
		if v := got[name]; v != "" {
			r.fields()[name] = v
		}
	}
	r.extracted = true
	return StateValidating, nil
}

func (r *agentRun) confirm(ctx context.Context) (State, error) {
	summary := r.spec.Summary(r.fields())
	line, err := r.ask(ctx, decorate.Prefix(ctx, r.engine.opts.Decorator, summary))
	if err != nil {
		return StateConfirming, err
	}
	if agent.IsExit(line) {
		return StateAbandoned, nil
	}
	if r.wantsSwitch(ctx, line) {
		r.confirming = true
		return StateSwitchPending, nil
	}
	if agent.IsAffirmative(line) {
		return StateDone, nil
	}
	r.input = line
	return StateCorrecting, nil
}

func (r *agentRun) correct(ctx context.Context) (State, error) {
	got := r.engine.opts.Extractor.Extract(ctx, r.spec.CorrectionInstruction(), r.input)

	updated := false
	for _, name := range r.spec.Inputs() {
		if v := got[name]; v != "" && v != r.fields()[name] {
			r.fields()[name] = v
			updated = true
		}
	}
	if !updated {
		return StateConfirming, r.say(ctx, correctionNotice)
	}
	if len(r.spec.Derived) > 0 {
		r.fields().Unset(r.spec.Derived...)
	}
	r.extracted = true
	return StateValidating, nil
}

// wantsSwitch classifies line and records a target when it names another
// workflow present in the session.
func (r *agentRun) wantsSwitch(ctx context.Context, line string) bool {
	in := r.engine.opts.Classifier.Classify(ctx, line)
	if in == core.IntentUnknown || in == r.engine.intent {
		return false
	}
	if r.session.Record(in.WorkflowKey()) == nil {
		r.engine.logger.Warn("switch target not in session", "intent", in)
		return false
	}
	r.target = in
	return true
}

func (r *agentRun) switchTo(ctx context.Context) error {
	keep := r.confirming && r.engine.opts.RetainDraftOnSwitch
	if !keep {
		r.fields().Unset(r.spec.Fields...)
	}
	if err := r.session.SetWorkflowStatus(r.target.WorkflowKey(), core.StatusOngoing); err != nil {
		return err
	}
	return r.say(ctx, "Switching to "+r.target.DisplayName()+"...")
}

func (r *agentRun) ask(ctx context.Context, text string) (string, error) {
	if err := r.ch.WriteLine(ctx, text); err != nil {
		return "", err
	}
	return r.ch.ReadLine(ctx)
}

func (r *agentRun) say(ctx context.Context, text string) error {
	return r.ch.WriteLine(ctx, text)
}
