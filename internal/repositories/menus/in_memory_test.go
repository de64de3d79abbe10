package menus

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal"
	"github.com/KirkDiggler/pretty-help-bot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestInMemory_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewInMemory(clock)

	menu := testutils.CreateTestMenu("m1", "owner", 3, clock.Now(), time.Minute)
	require.NoError(t, repo.Create(ctx, menu))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "owner", got.OwnerID)
	assert.Len(t, got.Pages, 3)

	// stored copy is isolated from the caller's value
	menu.Index = 2
	got, err = repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Index)
}

func TestInMemory_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemory(newFakeClock())

	err := repo.Create(ctx, nil)
	assert.ErrorIs(t, err, internal.ErrMissingParam)

	err = repo.Create(ctx, testutils.CreateTestMenu("", "owner", 1, time.Now(), 0))
	assert.ErrorIs(t, err, internal.ErrMissingParam)
}

func TestInMemory_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewInMemory(clock)

	require.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "owner", 1, clock.Now(), time.Minute)))
	assert.Error(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "owner", 1, clock.Now(), time.Minute)))

	// an expired menu's ID can be reused
	clock.Advance(2 * time.Minute)
	assert.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "other", 1, clock.Now(), time.Minute)))
}

func TestInMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewInMemory(clock)

	require.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "owner", 2, clock.Now(), time.Minute)))
	require.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("forever", "owner", 2, clock.Now(), 0)))

	clock.Advance(59 * time.Second)
	_, err := repo.Get(ctx, "m1")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = repo.Get(ctx, "m1")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	err = repo.UpdateIndex(ctx, "m1", 1)
	assert.ErrorIs(t, err, internal.ErrNotFound)

	_, err = repo.Get(ctx, "forever")
	assert.NoError(t, err)

	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 1, repo.Len())
}

func TestInMemory_UpdateIndex(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewInMemory(clock)

	require.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "owner", 3, clock.Now(), time.Minute)))
	require.NoError(t, repo.UpdateIndex(ctx, "m1", 2))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Index)
	assert.Equal(t, clock.Now().Add(time.Minute), got.ExpiresAt)

	err = repo.UpdateIndex(ctx, "missing", 1)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestInMemory_Delete(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewInMemory(clock)

	require.NoError(t, repo.Create(ctx, testutils.CreateTestMenu("m1", "owner", 1, clock.Now(), time.Minute)))
	require.NoError(t, repo.Delete(ctx, "m1"))

	_, err := repo.Get(ctx, "m1")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "m1"))
}
