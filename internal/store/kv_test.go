package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roger120981/buenavida-admin/internal/store"
)

func TestMemoryKV_SetGetDelete(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrMiss)

	require.NoError(t, kv.Set(ctx, "a", "1", 0))
	val, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, store.ErrMiss)
}

func TestMemoryKV_TTLExpiry(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "ephemeral", "x", 10*time.Millisecond))
	val, err := kv.Get(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Equal(t, "x", val)

	time.Sleep(20 * time.Millisecond)
	_, err = kv.Get(ctx, "ephemeral")
	assert.ErrorIs(t, err, store.ErrMiss)
}

func TestMemoryKV_ScanKeysByPrefix(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "buenavida:query:participants:1", "a", 0))
	require.NoError(t, kv.Set(ctx, "buenavida:query:participants:2", "b", 0))
	require.NoError(t, kv.Set(ctx, "buenavida:query:agencies:1", "c", 0))

	keys, err := kv.ScanKeys(ctx, "buenavida:query:participants:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestRedisKV_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := store.NewRedisKV(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrMiss)

	require.NoError(t, kv.Set(ctx, "buenavida:query:participants:1", "payload", time.Minute))
	val, err := kv.Get(ctx, "buenavida:query:participants:1")
	require.NoError(t, err)
	assert.Equal(t, "payload", val)

	require.NoError(t, kv.Set(ctx, "buenavida:query:participants:2", "other", time.Minute))
	keys, err := kv.ScanKeys(ctx, "buenavida:query:participants:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	require.NoError(t, kv.Delete(ctx, keys...))
	_, err = kv.Get(ctx, "buenavida:query:participants:1")
	assert.ErrorIs(t, err, store.ErrMiss)
}
