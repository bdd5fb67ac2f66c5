package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDenylist(t *testing.T) (*Denylist, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDenylist(client), srv
}

func TestDenylist_AddAndContains(t *testing.T) {
	dl, srv := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, dl.Add(ctx, "jti-1", time.Now().Add(30*time.Minute)))

	revoked, err = dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, srv.Exists("revoked:jti-1"))

	revoked, err = dl.Contains(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_EntryExpiresWithToken(t *testing.T) {
	dl, srv := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, dl.Add(ctx, "jti-1", time.Now().Add(10*time.Minute)))
	ttl := srv.TTL("revoked:jti-1")
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)

	srv.FastForward(11 * time.Minute)

	revoked, err := dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_SkipsExpiredTokens(t *testing.T) {
	dl, srv := newTestDenylist(t)

	require.NoError(t, dl.Add(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, srv.Exists("revoked:old"))
}

func TestDenylist_ServerDown(t *testing.T) {
	dl, srv := newTestDenylist(t)
	srv.Close()

	_, err := dl.Contains(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.Error(t, dl.Add(context.Background(), "jti-1", time.Now().Add(time.Minute)))
}
