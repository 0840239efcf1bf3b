package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_GetOrCreateIsLazyAndStable(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	a, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, a.Records, 3)
	require.NoError(t, a.SetWorkflowStatus(core.WorkflowPlanEvent, core.StatusOngoing))

	again, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, core.WorkflowPlanEvent, again.Current().Key)

	b, _ := store.GetOrCreate(ctx, "bob")
	assert.NotSame(t, a, b)
	assert.Nil(t, b.Current())

	ids, _ := store.List(ctx)
	assert.Equal(t, []string{"alice", "bob"}, ids)
}

func TestInMemoryStore_TTLEviction(t *testing.T) {
	now := time.Now()
	store := NewInMemoryStore(func(o *Options) {
		o.TTL = time.Minute
		o.Now = func() time.Time { return now }
	})
	ctx := context.Background()

	a, _ := store.GetOrCreate(ctx, "alice")
	now = now.Add(2 * time.Minute)

	ids, _ := store.List(ctx)
	assert.Empty(t, ids)

	fresh, _ := store.GetOrCreate(ctx, "alice")
	assert.NotSame(t, a, fresh)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
}

func TestInMemoryStore_ConcurrentFirstContact(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	states := make([]*core.SessionState, 20)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i], _ = store.GetOrCreate(context.Background(), "alice")
		}(i)
	}
	wg.Wait()
	for _, s := range states {
		assert.Same(t, states[0], s)
	}
}

func TestReconcile_AddsMissingRecordsAndFields(t *testing.T) {
	loaded := core.NewSessionState("alice", core.NewWorkflowRecord(core.WorkflowPlanEvent, "venue"))
	require.NoError(t, loaded.Record(core.WorkflowPlanEvent).Set("venue", "Hall"))
	fresh := core.NewSessionState("alice",
		core.NewWorkflowRecord(core.WorkflowPlanEvent, "venue", "budget"),
		core.NewWorkflowRecord(core.WorkflowLiveStreaming),
	)

	Reconcile(loaded, fresh)
	r := loaded.Record(core.WorkflowPlanEvent)
	assert.Equal(t, "Hall", r.Get("venue"))
	assert.NoError(t, r.Set("budget", "100"))
	assert.NotNil(t, loaded.Record(core.WorkflowLiveStreaming))
}
