package prefs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawpal/internal/kv"
)

type counter struct {
	Count int    `json:"count"`
	Label string `json:"label,omitempty"`
}

var counterKind = Kind[counter]{
	Key:     "@pawpal/test",
	Version: 2,
	Default: func() counter { return counter{Label: "default"} },
}

// failingKV fails every operation with err.
type failingKV struct {
	kv.Store
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Set(context.Context, string, []byte) error         { return f.err }
func (f failingKV) Remove(context.Context, string) error              { return f.err }

func TestStore_MissingRecordUsesDefault(t *testing.T) {
	s, err := Open(context.Background(), kv.NewMemory(), counterKind)
	require.NoError(t, err)
	assert.Equal(t, counter{Label: "default"}, s.Get())
	assert.True(t, s.LastUpdated().IsZero())
}

func TestStore_SetWritesVersionedRecord(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s, err := Open(ctx, mem, counterKind)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Set(ctx, counter{Count: 3}))
	assert.Equal(t, counter{Count: 3}, s.Get())
	assert.True(t, s.LastUpdated().Equal(fixed))

	raw, ok, err := mem.Get(ctx, counterKind.Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":2,"count":3,"lastUpdated":1772600767008}`, string(raw))

	reopened, err := Open(ctx, mem, counterKind)
	require.NoError(t, err)
	assert.Equal(t, counter{Count: 3}, reopened.Get())
	assert.True(t, reopened.LastUpdated().Equal(fixed))
}

func TestStore_IgnoresBadRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"newer version", `{"version":3,"count":9}`},
		{"not json", `{{{`},
		{"not an object", `[1,2]`},
		{"wrong payload type", `{"version":1,"count":"nine"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(ctx, counterKind.Key, []byte(tt.raw)))

			s, err := Open(ctx, mem, counterKind)
			require.NoError(t, err)
			assert.Equal(t, counter{Label: "default"}, s.Get())
		})
	}
}

func TestStore_OlderVersionIsAccepted(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, counterKind.Key, []byte(`{"version":1,"count":4}`)))

	s, err := Open(ctx, mem, counterKind)
	require.NoError(t, err)
	// fields absent from the record keep their default
	assert.Equal(t, counter{Count: 4, Label: "default"}, s.Get())
	assert.True(t, s.LastUpdated().IsZero())
}

func TestStore_CurrentVersionIsTakenAsWritten(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, counterKind.Key, []byte(`{"version":2,"count":5}`)))

	s, err := Open(ctx, mem, counterKind)
	require.NoError(t, err)
	// an omitted field is its zero value, not the default
	assert.Equal(t, counter{Count: 5}, s.Get())
}

func TestStore_BackendErrors(t *testing.T) {
	boom := errors.New("disk on fire")

	_, err := Open(context.Background(), failingKV{err: boom}, counterKind)
	require.ErrorIs(t, err, boom)

	ctx := context.Background()
	s, err := Open(ctx, kv.NewMemory(), counterKind)
	require.NoError(t, err)
	s.backend = failingKV{err: boom}

	require.ErrorIs(t, s.Set(ctx, counter{Count: 1}), boom)
	assert.Equal(t, counter{Label: "default"}, s.Get(), "failed write leaves snapshot untouched")
	require.ErrorIs(t, s.Clear(ctx), boom)
}

func TestStore_ClearResetsToDefault(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s, err := Open(ctx, mem, counterKind)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, counter{Count: 7}))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, counter{Label: "default"}, s.Get())
	assert.True(t, s.LastUpdated().IsZero())
	_, ok, err := mem.Get(ctx, counterKind.Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, kv.NewMemory(), counterKind)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Update(ctx, func(c counter) counter {
				c.Count++
				return c
			}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get().Count)
}
