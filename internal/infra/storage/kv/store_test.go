package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract общий контракт для всех реализаций Store
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "tab-1:booking_step", "payment"))
	val, err := store.Get(ctx, "tab-1:booking_step")
	require.NoError(t, err)
	assert.Equal(t, "payment", val)

	// Повторная запись перезаписывает значение
	require.NoError(t, store.Set(ctx, "tab-1:booking_step", "details"))
	val, err = store.Get(ctx, "tab-1:booking_step")
	require.NoError(t, err)
	assert.Equal(t, "details", val)

	require.NoError(t, store.Set(ctx, "tab-1:booking_data", "{}"))
	require.NoError(t, store.Remove(ctx, "tab-1:booking_step", "tab-1:booking_data", "tab-1:never-set"))

	_, err = store.Get(ctx, "tab-1:booking_step")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = store.Get(ctx, "tab-1:booking_data")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, store.Remove(ctx))
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	runStoreContract(t, NewRedisStore(client, 0))
}

func TestRedisStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tab-2:booking_step", "details"))
	assert.NoError(t, store.Ping(ctx))

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "tab-2:booking_step")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewRedisStore(client, 0)

	mr.Close()

	err = store.Set(context.Background(), "k", "v")
	assert.ErrorIs(t, err, ErrStorage)
}
