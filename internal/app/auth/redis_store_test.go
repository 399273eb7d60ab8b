package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptohub/internal/app/user"
)

// TEST_REDIS_ADDR points at a disposable Redis; the test is skipped without it.
func TestRedisStoreLifecycle(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	store := NewRedisStore(client)
	sess := NewSession(user.User{ID: "u-redis", Email: "r@example.com"}, time.Minute)
	require.NoError(t, store.Create(ctx, sess))

	members, err := client.SMembers(ctx, "user_sessions:u-redis").Result()
	require.NoError(t, err)
	assert.Contains(t, members, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "r@example.com", got.Email)

	require.NoError(t, store.Revoke(ctx, sess.ID))
	assert.ErrorIs(t, store.Revoke(ctx, sess.ID), ErrSessionRevoked)

	ttl, err := client.TTL(ctx, "session:"+sess.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "revocation keeps the expiry")

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreRejectsExpiredSession(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	store := NewRedisStore(client)
	sess := NewSession(user.User{Email: "old@example.com"}, -time.Minute)

	err := store.Create(context.Background(), sess)
	assert.ErrorContains(t, err, "already expired")
}
