package leaderboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "sg60", zerolog.Nop()), mr
}

func TestRedisStoreMissingKeyIsEmpty(t *testing.T) {
	store, _ := newRedisStore(t)
	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisStoreMalformedPayloadIsEmpty(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("sg60:lb:sg60", "{broken"))

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	saved := []Entry{
		{Name: "Bob", Score: 9, TotalTime: 61, Timestamp: 1754700100000},
		{Name: "Alice", Score: 8, TotalTime: 52, Timestamp: 1754700000000},
	}
	require.NoError(t, store.Save(ctx, saved))
	assert.True(t, mr.Exists("sg60:lb:sg60"))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}
