package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(context.Background()))
	return store, mr
}

func TestRedisStoreSaveFindDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	sess := Session{Token: "tok", Username: "Chirag.Mehta", ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists(redisKeyPrefix+"tok"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(redisKeyPrefix+"tok").Seconds(), 5)

	got, err := store.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Chirag.Mehta", got.Username)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Find(ctx, "tok")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStoreUnknownAndExpiredTokens(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, err := store.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, Session{Token: "short", Username: "Jay.Monga", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)
	_, err = store.Find(ctx, "short")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, Session{Token: "stale", ExpiresAt: time.Now().Add(-time.Minute)}))
	assert.False(t, mr.Exists(redisKeyPrefix+"stale"))

	n, err := store.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStoreBacksManager(t *testing.T) {
	store, _ := newTestRedisStore(t)
	m := NewManager(store, "secret", time.Hour)

	w := httptest.NewRecorder()
	_, err := m.Start(context.Background(), w, "Chirag.Mehta")
	require.NoError(t, err)

	sess, err := m.Current(requestWithCookies(w.Result().Cookies()))
	require.NoError(t, err)
	assert.Equal(t, "Chirag.Mehta", sess.Username)
}
