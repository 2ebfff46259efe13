package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovarares/standup-tickets/internal/session"
)

// openTestStore connects to the Redis named by REDIS_ADDR; without one the
// tests are skipped.
func openTestStore(t *testing.T) *session.RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return session.NewRedisStore(rdb, time.Minute)
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	spectatorID := int64(42)
	ses := session.Session{Username: "ana", Role: "user", SpectatorID: &spectatorID}
	require.NoError(t, store.Create(ctx, "sid-lifecycle", ses))

	got, err := store.Get(ctx, "sid-lifecycle")
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
	require.NotNil(t, got.SpectatorID)
	assert.Equal(t, spectatorID, *got.SpectatorID)

	require.NoError(t, store.Delete(ctx, "sid-lifecycle"))
	_, err = store.Get(ctx, "sid-lifecycle")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestGetUnknownSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "never-created")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestFlashPopsOnce(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetFlash(ctx, "sid-flash", session.Flash{Success: "Show added."}))

	f, ok := store.PopFlash(ctx, "sid-flash")
	require.True(t, ok)
	assert.Equal(t, "Show added.", f.Success)

	_, ok = store.PopFlash(ctx, "sid-flash")
	assert.False(t, ok)
}
