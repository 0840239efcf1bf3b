package artifact

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGetIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	data := []byte("https://img/1")
	require.NoError(t, svc.Save("alice", "a1", data))

	data[0] = 'H'
	out, err := svc.Get("alice", "a1")
	require.NoError(t, err)
	assert.Equal(t, "https://img/1", string(out))

	out[0] = 'x'
	out2, _ := svc.Get("alice", "a1")
	assert.Equal(t, "https://img/1", string(out2))
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	svc := NewInMemoryStore()
	require.NoError(t, svc.Save("alice", "b", []byte("2")))
	require.NoError(t, svc.Save("alice", "a", []byte("1")))
	require.NoError(t, svc.Save("bob", "c", []byte("3")))

	ids, err := svc.List("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, svc.Delete("alice", "a"))
	_, err = svc.Get("alice", "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete("alice", "a"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete("nobody", "a"), ErrNotFound)

	ids, _ = svc.List("nobody")
	assert.Empty(t, ids)
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	svc := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Save("alice", fmt.Sprintf("a%d", i%10), []byte("data")); err != nil {
				t.Errorf("save err: %v", err)
			}
			_, _ = svc.List("alice")
		}(i)
	}
	wg.Wait()
	ids, err := svc.List("alice")
	require.NoError(t, err)
	assert.Len(t, ids, 10)
}
