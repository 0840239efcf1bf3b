package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/model"
	"github.com/hupe1980/slotmesh/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.Extractor = (*ModelExtractor)(nil)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want core.Fields
		ok   bool
	}{
		{"plain", `{"venue": "Town Hall"}`, core.Fields{"venue": "Town Hall"}, true},
		{"fenced", "```json\n{\"ticketQuantity\": 100, \"ticketPrice\": \"free\"}\n```", core.Fields{"ticketQuantity": "100", "ticketPrice": "free"}, true},
		{"drops null and placeholders", `{"startTime": "2030-01-01 10:00", "endTime": null, "x": "...", "y": ""}`, core.Fields{"startTime": "2030-01-01 10:00"}, true},
		{"bool", `{"wantsImage": true}`, core.Fields{"wantsImage": "true"}, true},
		{"decimal keeps precision", `{"ticketPrice": 30.00}`, core.Fields{"ticketPrice": "30.00"}, true},
		{"prose", `Sure! {"budget": "$500"} hope that helps`, core.Fields{"budget": "$500"}, true},
		{"not json", "plan event", core.Fields{}, false},
		{"broken", `{"venue": `, core.Fields{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFields(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelExtractor_Extract(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddInstructedResponse("extract venue", "at the Town Hall", `{"venue":"Town Hall"}`)
	e := New(m)

	got := e.Extract(context.Background(), "extract venue", "at the Town Hall")
	assert.Equal(t, core.Fields{"venue": "Town Hall"}, got)
}

func TestModelExtractor_FailureYieldsEmptyMapping(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.FailWith(errors.New("rate limited"))

	got := New(m).Extract(context.Background(), "extract", "anything")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestModelExtractor_UnparsableYieldsEmptyMapping(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	got := New(m).Extract(context.Background(), "extract", "anything")
	assert.Empty(t, got)
}

func TestModelExtractor_IncludesPreviousUserTurns(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	store := transcript.NewInMemoryStore(0)
	require.NoError(t, store.Append("alice", core.NewTurn("alice", core.RoleUser, "it's called Gala")))
	require.NoError(t, store.Append("alice", core.NewTurn("alice", core.RoleSystem, "and the description?")))
	require.NoError(t, store.Append("alice", core.NewTurn("alice", core.RoleUser, "a fancy dinner")))

	e := New(m, func(o *Options) { o.History = store; o.HistoryTurns = 2 })
	e.Extract(core.WithUserID(context.Background(), "alice"), "extract", "a fancy dinner")

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	msgs := reqs[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "Previous message: it's called Gala", msgs[0].Text)
	assert.Equal(t, "a fancy dinner", msgs[1].Text)
}
