package core

// Intent is a classified user intent. The zero value is the unknown intent.
type Intent string

const (
	IntentUnknown       Intent = ""
	IntentPlanEvent     Intent = "plan event"
	IntentDiscoverEvent Intent = "discover event"
	IntentLiveStreaming Intent = "go live streaming"
)

// WorkflowKey identifies a workflow record inside a SessionState.
type WorkflowKey string

const (
	WorkflowPlanEvent     WorkflowKey = "planEvent"
	WorkflowDiscoverEvent WorkflowKey = "discoverEvent"
	WorkflowLiveStreaming WorkflowKey = "liveStreaming"
)

// Intents lists every known non-empty intent in menu order.
var Intents = []Intent{IntentPlanEvent, IntentDiscoverEvent, IntentLiveStreaming}

// WorkflowKey maps the intent to its workflow. Unknown intents return "".
func (i Intent) WorkflowKey() WorkflowKey {
	switch i {
	case IntentPlanEvent:
		return WorkflowPlanEvent
	case IntentDiscoverEvent:
		return WorkflowDiscoverEvent
	case IntentLiveStreaming:
		return WorkflowLiveStreaming
	default:
		return ""
	}
}

// DisplayName returns the human readable name used in notices.
func (i Intent) DisplayName() string {
	switch i {
	case IntentPlanEvent:
		return "Plan Event"
	case IntentDiscoverEvent:
		return "Discover Event"
	case IntentLiveStreaming:
		return "Go Live Streaming"
	default:
		return string(i)
	}
}

// Intent maps a workflow key back to the intent that starts it.
func (k WorkflowKey) Intent() Intent {
	for _, i := range Intents {
		if i.WorkflowKey() == k {
			return i
		}
	}
	return IntentUnknown
}
