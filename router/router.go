package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/decorate"
	"github.com/hupe1980/slotmesh/intent"
	"github.com/hupe1980/slotmesh/internal/util"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/session"
	"github.com/hupe1980/slotmesh/workflow"
)

const (
	// Greeting is shown when the user has no Ongoing workflow.
	Greeting = "Welcome! How can I assist you today? Would you like to plan an event, discover exciting events, or go live streaming? Just let me know your preference, and I'll guide you through the process."
)

// MenuFallback is written when the starting intent is not understood.
var MenuFallback = []string{
	"Sorry, I didn't understand. Please try phrases like:",
	"- Plan an event",
	"- Discover events",
	"- Go live streaming",
}

// Handler runs one workflow for a user. *workflow.Engine is a Handler.
type Handler interface {
	Run(ctx context.Context, state *core.SessionState, record *core.WorkflowRecord, ch core.Channel) (workflow.Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, state *core.SessionState, record *core.WorkflowRecord, ch core.Channel) (workflow.Result, error)

// Run implements Handler.
func (f HandlerFunc) Run(ctx context.Context, state *core.SessionState, record *core.WorkflowRecord, ch core.Channel) (workflow.Result, error) {
	return f(ctx, state, record, ch)
}

// Outcome tells the caller whether to keep stepping.
type Outcome int

const (
	// Continue means the interaction goes on.
	Continue Outcome = iota
	// Terminate means the user abandoned the interaction.
	Terminate
)

func (o Outcome) String() string {
	if o == Terminate {
		return "terminate"
	}
	return "continue"
}

// Options configures a Router.
type Options struct {
	Store      core.SessionStore
	Classifier core.Classifier
	Decorator  core.Decorator
	// Transcript records every line in and out when set.
	Transcript core.TranscriptStore
	Logger     logging.Logger
}

// Router dispatches user steps to workflow handlers. It is safe for concurrent use.
type Router struct {
	opts   Options
	logger logging.Logger
	locks  *util.KeyedMutex

	mu       sync.RWMutex
	handlers map[core.WorkflowKey]Handler
}

// New creates a Router with an in-memory store and heuristic classifier unless overridden.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{
		Store:      session.NewInMemoryStore(),
		Classifier: intent.HeuristicClassifier{},
		Decorator:  decorate.None{},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		opts:     opts,
		logger:   logging.OrNoOp(opts.Logger),
		locks:    util.NewKeyedMutex(),
		handlers: make(map[core.WorkflowKey]Handler),
	}
}

// Handle registers h for key, replacing any previous handler.
func (r *Router) Handle(key core.WorkflowKey, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

func (r *Router) handler(key core.WorkflowKey) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// Store returns the session store.
func (r *Router) Store() core.SessionStore { return r.opts.Store }

// Step advances userID's conversation by one unit: a menu round when no
// workflow is Ongoing, otherwise one run of the Ongoing workflow's handler.
func (r *Router) Step(ctx context.Context, userID string, ch core.Channel) (Outcome, error) {
	unlock := r.locks.Lock(userID)
	defer unlock()

	ctx = core.WithUserID(ctx, userID)
	state, err := r.opts.Store.GetOrCreate(ctx, userID)
	if err != nil {
		return Terminate, fmt.Errorf("load session %s: %w", userID, err)
	}

	current := state.Current()
	rec := r.recorder(userID, ch, current)

	var outcome Outcome
	if current == nil {
		outcome, err = r.menu(ctx, state, rec)
	} else {
		outcome, err = r.dispatch(ctx, state, current, rec)
	}

	if saveErr := r.opts.Store.Save(ctx, state); saveErr != nil {
		saveErr = fmt.Errorf("save session %s: %w", userID, saveErr)
		if err == nil {
			return Terminate, saveErr
		}
		r.logger.Error("session save failed", "user", userID, "error", saveErr)
	}
	return outcome, err
}

// Serve steps until the user abandons the interaction or input ends.
// Exhausted input is not an error.
func (r *Router) Serve(ctx context.Context, userID string, ch core.Channel) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := r.Step(ctx, userID, ch)
		if errors.Is(err, core.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if outcome == Terminate {
			return nil
		}
	}
}

func (r *Router) menu(ctx context.Context, state *core.SessionState, ch core.Channel) (Outcome, error) {
	if err := ch.WriteLine(ctx, decorate.Prefix(ctx, r.opts.Decorator, Greeting)); err != nil {
		return Terminate, err
	}
	line, err := ch.ReadLine(ctx)
	if err != nil {
		return Terminate, err
	}
	if agent.IsExit(line) {
		return Terminate, nil
	}

	in := r.opts.Classifier.Classify(ctx, line)
	if key := in.WorkflowKey(); key != "" {
		if err := state.SetWorkflowStatus(key, core.StatusOngoing); err == nil {
			r.logger.Info("workflow started", "user", state.UserID, "workflow", key)
			return Continue, nil
		}
	}
	for _, l := range MenuFallback {
		if err := ch.WriteLine(ctx, l); err != nil {
			return Terminate, err
		}
	}
	return Continue, nil
}

func (r *Router) dispatch(ctx context.Context, state *core.SessionState, current *core.WorkflowRecord, ch core.Channel) (Outcome, error) {
	h, ok := r.handler(current.Key)
	if !ok {
		r.logger.Info("workflow skipped", "user", state.UserID, "workflow", current.Key, "reason", core.ErrNotImplemented)
		if err := ch.WriteLine(ctx, NotImplementedNotice(current.Key)); err != nil {
			return Terminate, err
		}
		return Continue, state.SetWorkflowStatus(current.Key, core.StatusStopped)
	}

	res, err := h.Run(ctx, state, current, ch)
	if err != nil {
		return Terminate, err
	}
	switch res.Kind {
	case workflow.Completed:
		return Continue, state.SetWorkflowStatus(current.Key, core.StatusStopped)
	case workflow.Abandoned:
		return Terminate, nil
	default:
		return Continue, nil
	}
}

// NotImplementedNotice is written for workflows without a handler.
func NotImplementedNotice(key core.WorkflowKey) string {
	return title(key) + " is not implemented yet. Returning to main menu."
}

func title(key core.WorkflowKey) string {
	switch key {
	case core.WorkflowPlanEvent:
		return "Plan Event"
	case core.WorkflowDiscoverEvent:
		return "Discover Event"
	case core.WorkflowLiveStreaming:
		return "Live Streaming"
	default:
		return string(key)
	}
}
