package prefs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawpal/internal/kv"
)

func openFavorites(t *testing.T, backend kv.Store) *Favorites {
	t.Helper()
	f, err := OpenFavorites(context.Background(), backend)
	require.NoError(t, err)
	return f
}

func TestFavorites_AddListNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := openFavorites(t, kv.NewMemory())
	assert.Empty(t, f.List())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.Add(ctx, Favorite{ID: 1, Name: "Biscuit", AddedAt: base}))
	require.NoError(t, f.Add(ctx, Favorite{ID: 2, Name: "Mochi", AddedAt: base.Add(time.Hour)}))
	require.NoError(t, f.Add(ctx, Favorite{ID: 3, Name: "Pepper", AddedAt: base.Add(30 * time.Minute)}))

	list := f.List()
	require.Len(t, list, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, 3, f.Len())
	assert.True(t, f.Contains(3))
	assert.False(t, f.Contains(4))
}

func TestFavorites_AddExistingKeepsAddedAt(t *testing.T) {
	ctx := context.Background()
	f := openFavorites(t, kv.NewMemory())

	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.Add(ctx, Favorite{ID: 9, Name: "Old name", AddedAt: first}))
	require.NoError(t, f.Add(ctx, Favorite{ID: 9, Name: "New name", AddedAt: first.Add(24 * time.Hour)}))

	list := f.List()
	require.Len(t, list, 1)
	assert.Equal(t, "New name", list[0].Name)
	assert.True(t, list[0].AddedAt.Equal(first))
}

func TestFavorites_AddStampsTime(t *testing.T) {
	f := openFavorites(t, kv.NewMemory())
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	f.now = func() time.Time { return now }

	require.NoError(t, f.Add(context.Background(), Favorite{ID: 1}))
	assert.True(t, f.List()[0].AddedAt.Equal(now))
}

func TestFavorites_ToggleAndRemove(t *testing.T) {
	ctx := context.Background()
	f := openFavorites(t, kv.NewMemory())

	added, err := f.Toggle(ctx, Favorite{ID: 5, Name: "Rex"})
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, f.Contains(5))

	added, err = f.Toggle(ctx, Favorite{ID: 5})
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, f.Contains(5))

	require.NoError(t, f.Remove(ctx, 404), "removing a missing id is fine")
}

func TestFavorites_ConcurrentTogglesAlternate(t *testing.T) {
	ctx := context.Background()
	f := openFavorites(t, kv.NewMemory())

	var added atomic.Int32
	var wg sync.WaitGroup
	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := f.Toggle(ctx, Favorite{ID: 9, Name: "Juniper"})
			assert.NoError(t, err)
			if ok {
				added.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), added.Load(), "every add is paired with a remove")
	assert.False(t, f.Contains(9))
	assert.Zero(t, f.Len())
}

func TestFavorites_PersistAndClear(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	f := openFavorites(t, mem)

	require.NoError(t, f.Add(ctx, Favorite{ID: 1, Name: "Biscuit", Species: "Dog", PhotoURL: "https://img/1.jpg"}))

	reopened := openFavorites(t, mem)
	require.Len(t, reopened.List(), 1)
	assert.Equal(t, "https://img/1.jpg", reopened.List()[0].PhotoURL)
	assert.False(t, reopened.LastUpdated().IsZero())

	require.NoError(t, reopened.Clear(ctx))
	assert.Empty(t, reopened.List())
	assert.Empty(t, openFavorites(t, mem).List())
}

func TestFavorites_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	f := openFavorites(t, kv.NewMemory())
	require.NoError(t, f.Add(ctx, Favorite{ID: 1, Name: "Biscuit"}))

	list := f.List()
	list[0].Name = "changed"
	assert.Equal(t, "Biscuit", f.List()[0].Name)
}
