package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_MissingPreservesOrder(t *testing.T) {
	f := Fields{"x": "", "y": "1", "z": ""}
	assert.Equal(t, []string{"x", "z"}, f.Missing([]string{"x", "y", "z"}))
	assert.Equal(t, []string{"w"}, f.Missing([]string{"w"}))
}

func TestFields_UnsetAndSubset(t *testing.T) {
	f := Fields{"a": "1", "b": "2", "c": "3"}
	f.Unset("a", "b")
	assert.False(t, f.IsSet("a"))
	assert.True(t, f.IsSet("c"))
	assert.Equal(t, Fields{"b": "", "c": "3"}, f.Subset([]string{"b", "c"}))
}

func TestIntent_WorkflowKeyRoundTrip(t *testing.T) {
	for _, i := range Intents {
		assert.Equal(t, i, i.WorkflowKey().Intent())
	}
	assert.Equal(t, WorkflowKey(""), IntentUnknown.WorkflowKey())
	assert.Equal(t, "Go Live Streaming", IntentLiveStreaming.DisplayName())
}
