package transcript

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.TranscriptStore = (*InMemoryStore)(nil)

func TestInMemoryStore_HistoryAndLimit(t *testing.T) {
	s := NewInMemoryStore(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append("alice", core.NewTurn("alice", core.RoleUser, fmt.Sprintf("line %d", i))))
	}

	all, err := s.History("alice", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "line 2", all[0].Text)

	last, _ := s.History("alice", 1)
	require.Len(t, last, 1)
	assert.Equal(t, "line 4", last[0].Text)

	none, _ := s.History("bob", 0)
	assert.Empty(t, none)
}

func TestInMemoryStore_Search(t *testing.T) {
	s := NewInMemoryStore(0)
	require.NoError(t, s.Append("alice", core.NewTurn("alice", core.RoleUser, "I want to plan an event")))
	require.NoError(t, s.Append("alice", core.NewTurn("alice", core.RoleSystem, "Please provide the event title")))
	require.NoError(t, s.Append("alice", core.NewTurn("alice", core.RoleUser, "Summer Gala")))

	res, err := s.Search("alice", "EVENT", 10)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, _ = s.Search("alice", "", 1)
	assert.Len(t, res, 1)
}

func TestInMemoryStore_ConcurrentAppend(t *testing.T) {
	s := NewInMemoryStore(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Append("alice", core.NewTurn("alice", core.RoleUser, fmt.Sprint(i)))
		}(i)
	}
	wg.Wait()
	h, _ := s.History("alice", 0)
	assert.Len(t, h, 50)
}
