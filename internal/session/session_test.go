package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placekeeper/internal/keyvalue"
)

func newSlot(t *testing.T) (Slot, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.json")
	return keyvalue.NewFileStore(path), path
}

func TestAuthenticateThenRestoreInNewProcess(t *testing.T) {
	slot, path := newSlot(t)
	ctx := context.Background()

	first := NewContext(slot, nil)
	require.NoError(t, first.Authenticate(ctx, "tok-42"))
	assert.True(t, first.IsAuthenticated())

	// A fresh Context over the same slot file models a process restart.
	second := NewContext(keyvalue.NewFileStore(path), nil)
	restored, err := second.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, "tok-42", second.Token())
	assert.True(t, second.IsAuthenticated())
}

func TestLogoutThenRestoreInNewProcess(t *testing.T) {
	slot, path := newSlot(t)
	ctx := context.Background()

	first := NewContext(slot, nil)
	require.NoError(t, first.Authenticate(ctx, "tok-42"))
	require.NoError(t, first.Logout(ctx))
	assert.False(t, first.IsAuthenticated())

	second := NewContext(keyvalue.NewFileStore(path), nil)
	restored, err := second.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.False(t, second.IsAuthenticated())
}

func TestAuthenticateEmptyToken(t *testing.T) {
	slot, _ := newSlot(t)
	c := NewContext(slot, nil)

	err := c.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.Token())
}

func TestIsAuthenticatedTracksToken(t *testing.T) {
	slot, _ := newSlot(t)
	c := NewContext(slot, nil)
	ctx := context.Background()

	assert.False(t, c.IsAuthenticated())
	require.NoError(t, c.Authenticate(ctx, "t1"))
	assert.True(t, c.IsAuthenticated())
	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.Token())
}

func TestLogoutIdempotent(t *testing.T) {
	slot, _ := newSlot(t)
	c := NewContext(slot, nil)
	ctx := context.Background()

	assert.NoError(t, c.Logout(ctx))
	require.NoError(t, c.Authenticate(ctx, "t1"))
	assert.NoError(t, c.Logout(ctx))
	assert.NoError(t, c.Logout(ctx))
}

func TestRestoreRunsOnce(t *testing.T) {
	slot, _ := newSlot(t)
	ctx := context.Background()
	require.NoError(t, slot.Set(ctx, "token", "stored"))

	c := NewContext(slot, nil)
	restored, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)

	// Clearing the slot afterwards must not change the answer of a
	// repeated Restore within the same process.
	require.NoError(t, slot.Delete(ctx, "token"))
	restored, err = c.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, "stored", c.Token())
}

// failingSlot simulates unusable durable storage.
type failingSlot struct{}

func (failingSlot) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingSlot) Set(ctx context.Context, key, value string) error { return errors.New("disk gone") }
func (failingSlot) Delete(ctx context.Context, key string) error     { return errors.New("disk gone") }

func TestAuthenticatePersistenceWarning(t *testing.T) {
	c := NewContext(failingSlot{}, nil)

	err := c.Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrPersistence)
	// Login still succeeds for this session.
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "tok", c.Token())
}

func TestRestoreFailureLeavesUnauthenticated(t *testing.T) {
	c := NewContext(failingSlot{}, nil)

	restored, err := c.Restore(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, restored)
	assert.False(t, c.IsAuthenticated())
}

func TestLogoutClearsMemoryDespitePersistenceFailure(t *testing.T) {
	c := NewContext(failingSlot{}, nil)
	_ = c.Authenticate(context.Background(), "tok")

	err := c.Logout(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, c.IsAuthenticated())
}
