package db

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := InitRedis(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store, mr
}

func TestAdvertiserActiveAdsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.GetAdvertiserActiveAds("https://www.facebook.com/loja")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetAdvertiserActiveAds("https://www.facebook.com/loja", 42, time.Hour))

	n, ok, err := store.GetAdvertiserActiveAds("https://www.facebook.com/loja")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestAdvertiserActiveAdsTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.SetAdvertiserActiveAds("https://www.facebook.com/loja", 7, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.GetAdvertiserActiveAds("https://www.facebook.com/loja")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *RedisStore

	n, ok, err := store.GetAdvertiserActiveAds("anything")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, n)

	assert.NoError(t, store.SetAdvertiserActiveAds("anything", 1, time.Minute))
	store.Close()
}

func TestInitRedisUnreachable(t *testing.T) {
	_, err := InitRedis("127.0.0.1:1")
	assert.Error(t, err)
}
