package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	empty, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, PhaseUnregistered, empty.Phase())

	state := &State{}
	state.BindCandidate(5, 123)
	require.NoError(t, state.RecordAnswer(9, true))
	require.NoError(t, store.Save(ctx, "abc", state))

	assert.True(t, mr.Exists(keyPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"abc"))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists(keyPrefix+"abc"))
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	state := &State{}
	state.BindMentor(2)
	require.NoError(t, store.Save(ctx, "abc", state))

	mr.FastForward(2 * time.Minute)

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, loaded.HasMentor())
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	require.NoError(t, mr.Set(keyPrefix+"bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
}
