package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoacook/damoacook-back/internal/config"
)

type testCourse struct {
	ID       string
	Capacity int
}

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	}

	store, err := NewRedis(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedis_SetAndGet(t *testing.T) {
	store, _ := setupTestRedis(t)

	expected := testCourse{ID: "AIG2025001", Capacity: 20}
	require.NoError(t, store.Set(context.Background(), "course:1", expected, time.Minute))

	var actual testCourse
	found, err := store.Get(context.Background(), "course:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestRedis_GetNotFound(t *testing.T) {
	store, _ := setupTestRedis(t)

	var out testCourse
	found, err := store.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_Expiration(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Set(context.Background(), "short", "v", time.Minute))
	require.NoError(t, store.Set(context.Background(), "forever", "v", 0))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := store.Get(context.Background(), "short", &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = store.Get(context.Background(), "forever", &out)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRedis_GetInvalidJSON(t *testing.T) {
	store, _ := setupTestRedis(t)

	err := store.Db.Set(context.Background(), "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out testCourse
	found, err := store.Get(context.Background(), "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestRedis_EntryRoundTripKeepsPayloadBytes(t *testing.T) {
	store, _ := setupTestRedis(t)

	payload := []byte(`{"title":"한식조리기능사","remaining_slots":8}`)
	in := Entry{Payload: payload, StoredAt: time.Now().UTC().Truncate(time.Second), TTL: 10 * time.Minute}
	require.NoError(t, store.Set(context.Background(), "entry", in, 0))

	var out Entry
	found, err := store.Get(context.Background(), "entry", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, string(payload), string(out.Payload))
	assert.True(t, in.StoredAt.Equal(out.StoredAt))
	assert.Equal(t, in.TTL, out.TTL)
}

func TestRedis_ServerGoneIsAnError(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	var out string
	_, err := store.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewRedisInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:9999",
		DialTimeout:  200 * time.Millisecond,
	}

	store, err := NewRedis(context.Background(), cfg)
	assert.Nil(t, store)
	assert.Error(t, err)
}
