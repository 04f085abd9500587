package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCartDropsInvalidEntries(t *testing.T) {
	cart := NewCart(map[string]string{
		"fresh-eggs": "2",
		"seedlings":  "0",
		"chicks":     "-3",
		"honey":      "lots",
	})
	require.Equal(t, Cart{"fresh-eggs": 2}, cart)
}

func TestMemoryStoreAddIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCartStore()

	require.NoError(t, store.Add(ctx, "s1", "fresh-eggs", 2))
	require.NoError(t, store.Add(ctx, "s1", "fresh-eggs", 3))
	require.NoError(t, store.Add(ctx, "s1", "seedlings", 0)) // zero means one

	cart, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, Cart{"fresh-eggs": 5, "seedlings": 1}, cart)

	other, err := store.Get(ctx, "s2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Add(ctx, "s1", "fresh-eggs", 1)
		}()
	}
	wg.Wait()

	cart, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, uint(50), cart["fresh-eggs"])
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCartStore()
	require.NoError(t, store.Add(ctx, "s1", "fresh-eggs", 2))

	require.NoError(t, store.Clear(ctx, "s1"))

	cart, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, cart)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCartStore()
	require.NoError(t, store.Add(ctx, "s1", "fresh-eggs", 2))

	cart, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	cart["fresh-eggs"] = 99

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, uint(2), again["fresh-eggs"])
}
