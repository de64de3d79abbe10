package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/pretty-help-bot/internal/testutils"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(calls *int) core.Handler {
	return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		*calls++
		return core.Handled(), nil
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	store := NewMemoryRateLimitStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	calls := 0
	handler := UserRateLimitMiddleware(2, time.Minute, store)(counting(&calls))
	ctx := core.NewTestInteractionContext().WithUserID("spammer").AsCommand("help").InteractionContext

	for i := 0; i < 2; i++ {
		result, err := handler.Handle(ctx)
		require.NoError(t, err)
		assert.Nil(t, result.Response)
	}

	result, err := handler.Handle(ctx)
	require.NoError(t, err)
	require.NotNil(t, result.Response)
	assert.True(t, result.Response.Ephemeral)
	assert.Contains(t, result.Response.Content, "too fast")
	assert.Equal(t, 2, calls)

	// another user has their own bucket
	other := core.NewTestInteractionContext().WithUserID("someone").AsCommand("help").InteractionContext
	_, err = handler.Handle(other)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	// a new window starts clean
	now = now.Add(time.Minute)
	_, err = handler.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

type brokenStore struct{}

func (brokenStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	return 0, errors.New("store down")
}

func (brokenStore) Reset(ctx context.Context, key string) error {
	return nil
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	calls := 0
	handler := UserRateLimitMiddleware(1, time.Minute, brokenStore{})(counting(&calls))

	for i := 0; i < 3; i++ {
		_, err := handler.Handle(core.NewTestInteractionContext().InteractionContext)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestCommandRateLimitMiddleware_KeysByCommand(t *testing.T) {
	calls := 0
	handler := CommandRateLimitMiddleware(1, time.Minute, NewMemoryRateLimitStore())(counting(&calls))

	_, err := handler.Handle(core.NewTestInteractionContext().AsCommand("help").InteractionContext)
	require.NoError(t, err)
	_, err = handler.Handle(core.NewTestInteractionContext().AsCommand("about").InteractionContext)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestMemoryRateLimitStore_Sweep(t *testing.T) {
	store := NewMemoryRateLimitStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.Increment(ctx, "a", time.Minute)
	require.NoError(t, err)
	_, err = store.Increment(ctx, "b", time.Hour)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep())

	require.NoError(t, store.Reset(ctx, "b"))
	assert.Equal(t, 0, store.Sweep())
}

func TestRedisRateLimitStore(t *testing.T) {
	mr, client := testutils.CreateMiniRedisClient(t)
	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	count, err := store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:user-1"))

	count, err = store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mr.FastForward(time.Minute)

	count, err = store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.Reset(ctx, "user-1"))
	assert.False(t, mr.Exists("ratelimit:user-1"))
}

func TestRedisRateLimitStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	mock.ExpectIncr("ratelimit:user-1").SetErr(errors.New("redis down"))
	_, err := store.Increment(ctx, "user-1", time.Minute)
	assert.Error(t, err)

	mock.ExpectIncr("ratelimit:user-1").SetVal(1)
	mock.ExpectExpire("ratelimit:user-1", time.Minute).SetErr(errors.New("redis down"))
	_, err = store.Increment(ctx, "user-1", time.Minute)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
