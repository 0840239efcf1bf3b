// Package slotmesh provides a high-level façade over the slot-filling
// workflow engine, the session router and their ports. Most applications
// interact with this package by:
//  1. Creating a SlotMesh via New(), supplying a model.Model (or explicit ports)
//  2. Driving a user's conversation with Serve (or Step for one unit at a time)
//
// Every unset collaborator falls back to an in-memory or heuristic default so
// the façade is usable in tests with nothing but an Extractor.
package slotmesh

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/catalog"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/decorate"
	"github.com/hupe1980/slotmesh/discover"
	"github.com/hupe1980/slotmesh/extract"
	"github.com/hupe1980/slotmesh/intent"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
	"github.com/hupe1980/slotmesh/router"
	"github.com/hupe1980/slotmesh/session"
	"github.com/hupe1980/slotmesh/transcript"
	"github.com/hupe1980/slotmesh/workflow"
)

// PlanEventCompletion is written when the plan-event workflow completes.
const PlanEventCompletion = "All required information for planning event has been collected!"

// ErrNoExtractor is returned by New when neither a Model nor an Extractor is configured.
var ErrNoExtractor = errors.New("slotmesh: a model or an extractor is required")

// Options configures a SlotMesh.
type Options struct {
	// Model backs every port that is not set explicitly.
	Model model.Model

	Extractor  core.Extractor
	Classifier core.Classifier
	Decorator  core.Decorator
	Summarizer core.Summarizer
	// Images enables the image agent. Nil omits it.
	Images core.ImageGenerator
	// Trigger replaces the default switch keyword set.
	Trigger core.SwitchTrigger

	// Stores (defaults to in-memory implementations if not provided).
	Store      core.SessionStore
	Transcript core.TranscriptStore

	// Events lists featured events for the discover workflow.
	Events []discover.Event

	// Clock and Location drive time validation and instruction templates.
	Clock    func() time.Time
	Location *time.Location

	RetainDraftOnSwitch bool
	// Decorate disables decoration when false even if a Model is set.
	Decorate bool

	Logger logging.Logger
}

// SlotMesh aggregates the router, the plan-event engine and the discover handler.
type SlotMesh struct {
	opts     Options
	router   *router.Router
	engine   *workflow.Engine
	discover *discover.Handler
}

// New wires a SlotMesh.
func New(optFns ...func(o *Options)) (*SlotMesh, error) {
	opts := Options{
		Transcript: transcript.NewInMemoryStore(200),
		Clock:      time.Now,
		Location:   time.Local,
		Decorate:   true,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	if err := opts.fillPorts(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		opts.Store = session.NewInMemoryStore(func(o *session.Options) { o.Factory = SessionFactory() })
	}

	plan := catalog.PlanEvent(func(o *catalog.Options) {
		o.Images = opts.Images
		o.Now = opts.Clock
		o.Location = opts.Location
		o.Logger = opts.Logger
	})
	engine, err := workflow.New(plan, core.IntentPlanEvent, func(o *workflow.Options) {
		o.Extractor = opts.Extractor
		o.Classifier = opts.Classifier
		o.Decorator = opts.Decorator
		o.Logger = opts.Logger
		o.Clock = opts.Clock
		o.RetainDraftOnSwitch = opts.RetainDraftOnSwitch
		o.Checkpoint = opts.Store.Save
		o.CompletionMessage = PlanEventCompletion
		if opts.Trigger != nil {
			o.Trigger = opts.Trigger
		}
	})
	if err != nil {
		return nil, err
	}

	disc := discover.New(func(o *discover.Options) {
		o.Events = opts.Events
		o.Summarizer = opts.Summarizer
		o.Logger = opts.Logger
	})

	r := router.New(func(o *router.Options) {
		o.Store = opts.Store
		o.Classifier = opts.Classifier
		o.Decorator = opts.Decorator
		o.Transcript = opts.Transcript
		o.Logger = opts.Logger
	})
	r.Handle(core.WorkflowPlanEvent, engine)
	r.Handle(core.WorkflowDiscoverEvent, disc)

	return &SlotMesh{opts: opts, router: r, engine: engine, discover: disc}, nil
}

func (o *Options) fillPorts() error {
	if o.Extractor == nil {
		if o.Model == nil {
			return ErrNoExtractor
		}
		o.Extractor = extract.New(o.Model, func(eo *extract.Options) {
			eo.History = o.Transcript
			eo.Logger = o.Logger
		})
	}
	if o.Classifier == nil {
		if o.Model != nil {
			o.Classifier = intent.New(o.Model, func(io *intent.Options) { io.Logger = o.Logger })
		} else {
			o.Classifier = intent.HeuristicClassifier{}
		}
	}
	switch {
	case !o.Decorate:
		o.Decorator = decorate.None{}
	case o.Decorator != nil:
	case o.Model != nil:
		o.Decorator = decorate.New(o.Model, func(do *decorate.Options) { do.Logger = o.Logger })
	default:
		o.Decorator = decorate.None{}
	}
	if o.Summarizer == nil && o.Model != nil {
		o.Summarizer = discover.NewModelSummarizer(o.Model, o.Logger)
	}
	return nil
}

// SessionFactory builds the initial state of a user: one Stopped record per
// workflow, with the plan-event and discover schemas.
func SessionFactory() core.SessionFactory {
	schema := catalog.PlanEventSchema()
	return func(userID string) *core.SessionState {
		return core.NewSessionState(userID,
			core.NewWorkflowRecord(core.WorkflowPlanEvent, schema...),
			core.NewWorkflowRecord(core.WorkflowDiscoverEvent, discover.Schema...),
			core.NewWorkflowRecord(core.WorkflowLiveStreaming),
		)
	}
}

// Step advances userID's conversation by one unit.
func (s *SlotMesh) Step(ctx context.Context, userID string, ch core.Channel) (router.Outcome, error) {
	return s.router.Step(ctx, userID, ch)
}

// Serve runs userID's conversation until exit or end of input.
func (s *SlotMesh) Serve(ctx context.Context, userID string, ch core.Channel) error {
	return s.router.Serve(ctx, userID, ch)
}

// Router returns the session router.
func (s *SlotMesh) Router() *router.Router { return s.router }

// Catalog returns the plan-event agents.
func (s *SlotMesh) Catalog() agent.Catalog { return s.engine.Catalog() }

// Store returns the session store.
func (s *SlotMesh) Store() core.SessionStore { return s.opts.Store }

// Transcript returns the transcript store.
func (s *SlotMesh) Transcript() core.TranscriptStore { return s.opts.Transcript }

// Events returns the featured events of the discover workflow.
func (s *SlotMesh) Events() []discover.Event { return s.discover.Events() }
