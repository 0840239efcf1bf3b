package slotmesh

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/discover"
	"github.com/hupe1980/slotmesh/internal/testutil"
	"github.com/hupe1980/slotmesh/model"
	"github.com/hupe1980/slotmesh/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_RequiresExtractor(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoExtractor)
}

func TestSessionFactory(t *testing.T) {
	state := SessionFactory()("alice")
	assert.Equal(t, "alice", state.UserID)
	require.Len(t, state.Records, 3)
	assert.Nil(t, state.Current())

	plan := state.Record(core.WorkflowPlanEvent)
	require.NotNil(t, plan)
	assert.Contains(t, plan.Schema, "eventTitle")
	assert.Contains(t, plan.Schema, "nftTicketingAndPayment")

	disc := state.Record(core.WorkflowDiscoverEvent)
	require.NotNil(t, disc)
	assert.Equal(t, discover.Schema, disc.Schema)
	assert.NotNil(t, state.Record(core.WorkflowLiveStreaming))
}

func TestSlotMesh_OfflineDefaults(t *testing.T) {
	sm, err := New(func(o *Options) {
		o.Extractor = testutil.NewFakeExtractor()
		o.Decorate = false
	})
	require.NoError(t, err)
	assert.NotNil(t, sm.Store())
	assert.NotNil(t, sm.Transcript())
	assert.Equal(t, discover.DefaultEvents, sm.Events())
	assert.NotEmpty(t, sm.Catalog())

	ch := testutil.NewScriptedChannel("go live streaming", "exit")
	require.NoError(t, sm.Serve(context.Background(), "bob", ch))
	assert.Contains(t, ch.Output(), router.NotImplementedNotice(core.WorkflowLiveStreaming))
}

func TestSlotMesh_DiscoverWithModel(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("I want to discover events", "discover event")
	m.AddResponse(discover.DefaultEvents[0].Description, "A short summary.")

	sm, err := New(func(o *Options) {
		o.Model = m
		o.Decorate = false
	})
	require.NoError(t, err)

	ctx := context.Background()
	ch := testutil.NewScriptedChannel("I want to discover events", "1", "yes", "exit")
	require.NoError(t, sm.Serve(ctx, "carol", ch))

	out := ch.Output()
	assert.Contains(t, out, "A short summary.")
	assert.Contains(t, out, "Redirect to URL... "+discover.DefaultEvents[0].URL)

	state, err := sm.Store().GetOrCreate(ctx, "carol")
	require.NoError(t, err)
	rec := state.Record(core.WorkflowDiscoverEvent)
	require.NotNil(t, rec)
	assert.Equal(t, core.StatusStopped, rec.Status)
	assert.Equal(t, discover.DefaultEvents[0].ID, rec.Fields[discover.FieldSelectedEvent])

	turns, err := sm.Transcript().History("carol", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, turns)
}

func TestSlotMesh_PlanEventCheckpointsConfirmedAgent(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("I want to plan an event", "plan event")
	m.AddResponse("Jazz Night, an evening of live jazz",
		`{"eventTitle": "Jazz Night", "eventDescription": "An evening of live jazz"}`)

	sm, err := New(func(o *Options) {
		o.Model = m
		o.Decorate = false
		o.Clock = testutil.FixedClock(time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC))
		o.Location = time.UTC
	})
	require.NoError(t, err)

	ctx := context.Background()
	ch := testutil.NewScriptedChannel("I want to plan an event", "Jazz Night, an evening of live jazz", "yes", "exit")
	require.NoError(t, sm.Serve(ctx, "dave", ch))

	state, err := sm.Store().GetOrCreate(ctx, "dave")
	require.NoError(t, err)
	rec := state.Current()
	require.NotNil(t, rec)
	assert.Equal(t, core.WorkflowPlanEvent, rec.Key)
	assert.Equal(t, "Jazz Night", rec.Fields["eventTitle"])
	assert.True(t, rec.IsConfirmed("TitleAndDescriptionAgent"))
	assert.Contains(t, ch.Output(), "Event Title: Jazz Night\nEvent Description: An evening of live jazz\nIs this correct? (yes/no)")
}
