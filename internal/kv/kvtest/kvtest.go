// Package kvtest holds the behaviour every kv.Store implementation must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawpal/internal/kv"
)

// Run exercises a store produced by open. open is called once per subtest
// and must return an empty store.
func Run(t *testing.T, open func(t *testing.T) kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := open(t)
		v, ok, err := s.Get(ctx, "@pawpal/favorites")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "@pawpal/sort", []byte(`{"version":1,"sort":"recent"}`)))
		require.NoError(t, s.Set(ctx, "@pawpal/sort", []byte(`{"version":1,"sort":"distance"}`)))

		v, ok, err := s.Get(ctx, "@pawpal/sort")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"version":1,"sort":"distance"}`, string(v))
	})

	t.Run("returned bytes are a copy", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "k", []byte("abc")))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		v[0] = 'z'
		again, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("remove", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Remove(ctx, "k"))
		require.NoError(t, s.Remove(ctx, "never-set"))

		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys sorted", func(t *testing.T) {
		s := open(t)
		for _, k := range []string{"@pawpal/species", "@pawpal/favorites", "@pawpal/location"} {
			require.NoError(t, s.Set(ctx, k, []byte("{}")))
		}
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"@pawpal/favorites", "@pawpal/location", "@pawpal/species"}, keys)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := open(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, s.Set(cctx, "k", []byte("v")))
	})

	t.Run("use after close", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Close())

		_, _, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, kv.ErrClosed)
		assert.ErrorIs(t, s.Set(ctx, "k", []byte("w")), kv.ErrClosed)
		assert.ErrorIs(t, s.Remove(ctx, "k"), kv.ErrClosed)
		_, err = s.Keys(ctx)
		assert.ErrorIs(t, err, kv.ErrClosed)
	})
}
