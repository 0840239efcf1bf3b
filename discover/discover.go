// Package discover implements the "discover event" workflow: browse a list of
// featured events, read a short summary of one and optionally follow it to
// the event page.
package discover

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
	"github.com/hupe1980/slotmesh/model"
	"github.com/hupe1980/slotmesh/workflow"
)

// FieldSelectedEvent records the id of the last event the user looked at.
const FieldSelectedEvent = "selectedEvent"

// Schema is the field set of the discover-event record.
var Schema = []string{FieldSelectedEvent}

// Event is a featured event.
type Event struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
}

// DefaultEvents are shown when no featured events are configured.
var DefaultEvents = []Event{
	{
		ID:          "E001",
		Title:       "Sunset Beach Music Festival",
		Description: "Join us for an unforgettable evening of live music, food trucks, and beach games as the sun sets over the ocean. Featuring top local bands and a vibrant crowd, this festival is perfect for music lovers and families alike. Enjoy a variety of cuisines, fun activities for all ages, and a breathtaking sunset view.",
		URL:         "https://festigo.com/events/sunset-beach-music-festival",
	},
	{
		ID:          "E002",
		Title:       "Downtown Art Walk",
		Description: "Explore the city's creative side with our monthly Downtown Art Walk. Stroll through galleries, meet local artists, and enjoy live painting demonstrations. Food stalls and pop-up shops line the streets, making this a must-visit for art enthusiasts and casual visitors alike.",
		URL:         "https://festigo.com/events/downtown-art-walk",
	},
	{
		ID:          "E003",
		Title:       "Tech Innovators Conference",
		Description: "A gathering of the brightest minds in technology, featuring keynote speeches, hands-on workshops, and networking opportunities. Whether you're a startup founder, developer, or tech enthusiast, this conference offers insights into the latest trends and innovations.",
		URL:         "https://festigo.com/events/tech-innovators-conference",
	},
}

const (
	whichPrompt  = "Which event are you interested in? (Type the number or event title)"
	detailPrompt = "Would you like to see the detailed description and be redirected to the event page? (yes/no)"
	notFound     = "Sorry, I couldn't find that event. Returning to main menu."
)

// Options configures a Handler.
type Options struct {
	Events     []Event
	Summarizer core.Summarizer
	Logger     logging.Logger
}

// Handler serves the discover-event workflow. It satisfies router.Handler.
type Handler struct {
	events     []Event
	summarizer core.Summarizer
	logger     logging.Logger
}

// New creates a Handler over DefaultEvents unless overridden.
func New(optFns ...func(o *Options)) *Handler {
	opts := Options{Events: DefaultEvents}
	for _, fn := range optFns {
		fn(&opts)
	}
	if len(opts.Events) == 0 {
		opts.Events = DefaultEvents
	}
	return &Handler{events: opts.Events, summarizer: opts.Summarizer, logger: logging.OrNoOp(opts.Logger)}
}

// Events returns the featured events.
func (h *Handler) Events() []Event { return h.events }

// Run lists the events and walks the user through one selection.
// Picking nothing returns to the menu as a completed run.
func (h *Handler) Run(ctx context.Context, _ *core.SessionState, record *core.WorkflowRecord, ch core.Channel) (workflow.Result, error) {
	lines := make([]string, 0, len(h.events)+1)
	for i, ev := range h.events {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, ev.Title))
	}
	lines = append(lines, whichPrompt)
	answer, err := ask(ctx, ch, lines...)
	if err != nil {
		return workflow.Result{}, err
	}
	if agent.IsExit(answer) {
		return workflow.Result{Kind: workflow.Abandoned}, nil
	}

	ev, ok := h.Select(answer)
	if !ok {
		return workflow.Result{Kind: workflow.Completed}, ch.WriteLine(ctx, notFound)
	}
	if err := record.Set(FieldSelectedEvent, ev.ID); err != nil {
		h.logger.Warn("cannot record selection", "event", ev.ID, "error", err)
	}

	answer, err = ask(ctx, ch,
		"Summarizing event description, please wait...",
		ev.Title,
		h.summarize(ctx, ev),
		detailPrompt,
	)
	if err != nil {
		return workflow.Result{}, err
	}
	if agent.IsExit(answer) {
		return workflow.Result{Kind: workflow.Abandoned}, nil
	}
	if agent.IsAffirmative(answer) {
		if err := writeLines(ctx, ch, ev.Description, "Redirect to URL... "+ev.URL); err != nil {
			return workflow.Result{}, err
		}
	}
	return workflow.Result{Kind: workflow.Completed, Fields: record.Fields.Clone()}, nil
}

// Select finds an event by 1-based number or case-insensitive title.
func (h *Handler) Select(answer string) (Event, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(h.events) {
			return h.events[n-1], true
		}
		return Event{}, false
	}
	for _, ev := range h.events {
		if strings.EqualFold(ev.Title, answer) {
			return ev, true
		}
	}
	return Event{}, false
}

func (h *Handler) summarize(ctx context.Context, ev Event) string {
	if h.summarizer != nil {
		if s := h.summarizer.Summarize(ctx, ev.Description); s != "" {
			return s
		}
	}
	return FirstSentence(ev.Description)
}

// FirstSentence returns text up to and including its first sentence terminator.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	return text
}

func ask(ctx context.Context, ch core.Channel, lines ...string) (string, error) {
	if err := writeLines(ctx, ch, lines...); err != nil {
		return "", err
	}
	return ch.ReadLine(ctx)
}

func writeLines(ctx context.Context, ch core.Channel, lines ...string) error {
	for _, l := range lines {
		if err := ch.WriteLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// SummaryInstruction asks for a short, enticing summary.
const SummaryInstruction = "Summarize the following event description in 2-3 sentences, focusing on what makes it interesting or unique."

// ModelSummarizer implements core.Summarizer with a language model.
// Failures yield "".
type ModelSummarizer struct {
	model   model.Model
	timeout time.Duration
	logger  logging.Logger
}

// NewModelSummarizer creates a ModelSummarizer.
func NewModelSummarizer(m model.Model, logger logging.Logger) *ModelSummarizer {
	return &ModelSummarizer{model: m, timeout: 30 * time.Second, logger: logging.OrNoOp(logger)}
}

// Summarize implements core.Summarizer.
func (s *ModelSummarizer) Summarize(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	out, err := model.Complete(ctx, s.model, model.NewRequest(SummaryInstruction, text).WithTemperature(0.4))
	if err != nil {
		s.logger.Warn("summarize failed", "error", err)
		return ""
	}
	return out
}
