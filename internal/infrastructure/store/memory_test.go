package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMissingKey(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "k", "v1"))
	require.NoError(t, st.Set(ctx, "k", "v2"))

	val, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestMemoryStoreEmptyValueIsStored(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "k", ""))

	val, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestMemoryStoreSnapshotIsACopy(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "k", "v"))
	snap := st.Snapshot()
	snap["k"] = "mutated"

	val, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = st.Set(ctx, "k", "v")
		}()
		go func() {
			defer wg.Done()
			_, _ = st.Get(ctx, "k")
		}()
	}
	wg.Wait()
}
