package catalog

import (
	"fmt"
	"time"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
)

// Options configures the plan-event catalog.
type Options struct {
	// Images enables the image agent. Nil omits it.
	Images core.ImageGenerator
	// Now is the clock used by the time validator.
	Now func() time.Time
	// Location interprets zone-less times. Defaults to time.Local.
	Location *time.Location
	Logger   logging.Logger
}

// TimeNotice is the rephrasing hint shown when event times are missing.
const TimeNotice = "Sorry, I could not understand your event time. Please try to rephrase, e.g., 'from June 1st to June 3rd, all day', 'next Friday 7pm to 10pm', or 'tomorrow evening'."

// PlanEvent returns the ordered agent catalog of the "plan event" workflow.
func PlanEvent(optFns ...func(o *Options)) agent.Catalog {
	opts := Options{Now: time.Now, Location: time.Local}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := agent.Catalog{
		TitleAndDescriptionAgent(),
		TimeAgent(opts.Now, opts.Location),
		TicketAgent(),
		VenueAgent(),
		BudgetAgent(),
	}
	if opts.Images != nil {
		c = append(c, ImageAgent(opts.Images, opts.Logger))
	}
	return append(c, NftTicketingAndPaymentAgent())
}

// PlanEventSchema lists every field the plan-event record accepts, including
// the image fields so records stay stable whether or not images are enabled.
func PlanEventSchema() []string {
	return agent.Catalog{
		TitleAndDescriptionAgent(),
		TimeAgent(time.Now, time.Local),
		TicketAgent(),
		VenueAgent(),
		BudgetAgent(),
		ImageAgent(nil, nil),
		NftTicketingAndPaymentAgent(),
	}.Schema()
}

// TitleAndDescriptionAgent collects eventTitle and eventDescription.
func TitleAndDescriptionAgent() agent.Spec {
	return agent.Spec{
		Name:   "TitleAndDescriptionAgent",
		Fields: []string{"eventTitle", "eventDescription"},
		Labels: map[string]string{"eventTitle": "event title", "eventDescription": "event description"},
		Prompt: "Please provide the event title and a short description.",
		Instruction: agent.NewInstructionFromText(
			`Given the current and previous user messages, extract the event title and description as creatively and flexibly as possible, even if the user is informal or provides partial info. Reply as JSON: {"eventTitle": "...", "eventDescription": "..."}`),
		Validate: NonEmpty("eventTitle", "eventDescription"),
		Confirm: func(f core.Fields) string {
			return fmt.Sprintf("Event Title: %s\nEvent Description: %s\nIs this correct? (yes/no)", f["eventTitle"], f["eventDescription"])
		},
	}
}

// TimeAgent collects startTime and endTime, both in the future and ordered.
func TimeAgent(now func() time.Time, loc *time.Location) agent.Spec {
	return agent.Spec{
		Name:   "TimeAgent",
		Fields: []string{"startTime", "endTime"},
		Labels: map[string]string{"startTime": "start time", "endTime": "end time"},
		Prompt: "What is the start and end time for your event? (To ensure accuracy, use correct date and time format, e.g., '2025-06-01 18:00' or '2025-06-01 18:00 to 2025-06-01 20:00')",
		Instruction: agent.NewInstructionFromText(
			`The current date and time is {{.now}}. Given the current and previous user messages, extract the start and end time for the event. Be extremely flexible: accept any natural language or ambiguous date/time expressions (e.g., "all day", "from 1st June to 3rd June", "for the whole weekend") and infer reasonable start and end times; "all day" means 00:00 to 23:59 for that day. Format both as YYYY-MM-DD HH:MM. Reply as JSON: {"startTime": "...", "endTime": "..."}. If only one is provided, leave the other as null.`),
		Validate:      TimeRange(now, loc),
		MissingNotice: TimeNotice,
		Confirm: func(f core.Fields) string {
			return fmt.Sprintf("Start Time: %s\nEnd Time: %s\nIs this correct? (yes/no)", f["startTime"], f["endTime"])
		},
	}
}

// TicketAgent collects ticketQuantity and ticketPrice.
func TicketAgent() agent.Spec {
	return agent.Spec{
		Name:   "TicketAgent",
		Fields: []string{"ticketQuantity", "ticketPrice"},
		Labels: map[string]string{"ticketQuantity": "ticket quantity", "ticketPrice": "ticket price"},
		Prompt: `How many tickets will be available, and what is the price per ticket? (Say "free" if no charge)`,
		Instruction: agent.NewInstructionFromText(
			`Given the current and previous user messages, extract the ticket quantity and price as flexibly as possible, even if the user is informal, creative, or provides partial info. Reply as JSON: {"ticketQuantity": "...", "ticketPrice": "..."}`),
		Validate: Tickets,
		Confirm: func(f core.Fields) string {
			return fmt.Sprintf("Ticket Quantity: %s\nTicket Price: %s\nIs this correct? (yes/no)", f["ticketQuantity"], f["ticketPrice"])
		},
	}
}

func VenueAgent() agent.Spec {
	return singleField("VenueAgent", "venue", "Venue",
		"Where will the event take place? Please provide the venue or location.",
		`Given the current and previous user messages, extract the venue/location as flexibly as possible, even if the user is informal, creative, or provides partial info. Reply as JSON: {"venue": "..."}`)
}

func BudgetAgent() agent.Spec {
	return singleField("BudgetAgent", "budget", "Budget",
		"What is your budget for the event?",
		`Given the current and previous user messages, extract the budget as flexibly as possible, even if the user is informal, creative, or provides partial info. Reply as JSON: {"budget": "..."}`)
}

func NftTicketingAndPaymentAgent() agent.Spec {
	return singleField("NftTicketingAndPaymentAgent", "nftTicketingAndPayment", "NFT Ticketing & Payment",
		"Would you like to set up NFT ticketing and payment? Please provide details.",
		`Given the current and previous user messages, extract NFT ticketing and payment setup info as flexibly as possible, even if the user is informal, creative, or provides partial info. Reply as JSON: {"nftTicketingAndPayment": "..."}`)
}

func singleField(name, field, title, prompt, instruction string) agent.Spec {
	return agent.Spec{
		Name:        name,
		Fields:      []string{field},
		Prompt:      prompt,
		Instruction: agent.NewInstructionFromText(instruction),
		Validate:    NonEmpty(field),
		Confirm: func(f core.Fields) string {
			return fmt.Sprintf("%s: %s\nIs this correct? (yes/no)", title, f[field])
		},
	}
}
