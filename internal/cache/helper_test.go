package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	t.Run("miss loads and populates the cache", func(t *testing.T) {
		mr := withTestRedis(t)
		ctx := context.Background()

		loads := 0
		load := func(dest *cachedThing) func() error {
			return func() error {
				loads++
				dest.ID = 1
				dest.Name = "Figma"
				return nil
			}
		}

		var first cachedThing
		require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, load(&first)))
		assert.Equal(t, 1, loads)
		assert.True(t, mr.Exists("thing:1"))

		var second cachedThing
		require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, load(&second)))
		assert.Equal(t, 1, loads, "second read must come from cache")
		assert.Equal(t, "Figma", second.Name)
	})

	t.Run("nil client degrades to the loader", func(t *testing.T) {
		SetClient(nil)
		var out cachedThing
		err := Aside(context.Background(), "thing:1", &out, time.Minute, func() error {
			out.Name = "direct"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "direct", out.Name)
	})

	t.Run("loader errors propagate and nothing is cached", func(t *testing.T) {
		mr := withTestRedis(t)
		wantErr := errors.New("db down")
		var out cachedThing
		err := Aside(context.Background(), "thing:1", &out, time.Minute, func() error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.False(t, mr.Exists("thing:1"))
	})

	t.Run("corrupt entry is dropped and reloaded", func(t *testing.T) {
		mr := withTestRedis(t)
		require.NoError(t, mr.Set("thing:1", "{not json"))

		var out cachedThing
		err := Aside(context.Background(), "thing:1", &out, time.Minute, func() error {
			out.Name = "reloaded"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "reloaded", out.Name)
	})
}

func TestInvalidate(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(7), `{"id":7}`))
	require.NoError(t, mr.Set(CatalogKey, `[]`))

	InvalidateUser(ctx, 7)
	assert.False(t, mr.Exists(UserKey(7)))

	InvalidateCatalog(ctx)
	assert.False(t, mr.Exists(CatalogKey))
}

func TestKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "user:42", UserKey(42))
	assert.Equal(t, "blacklist:abc", TokenBlacklistKey("abc"))
}
