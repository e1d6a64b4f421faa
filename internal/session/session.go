// Package session holds the authentication state for a single app launch.
// The current token lives in memory and is mirrored to one durable
// key-value slot so a restart can restore the session.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// tokenKey is the single slot this package owns in the durable store.
const tokenKey = "token"

// Slot is the durable key-value storage consumed by the session. It is
// satisfied by keyvalue.FileStore.
type Slot interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Context is the single source of truth for authentication state.
// IsAuthenticated is true exactly when a non-empty token is held.
type Context struct {
	slot   Slot
	logger *zap.Logger

	mu    sync.RWMutex
	token string

	restoreOnce   sync.Once
	restoreResult bool
	restoreErr    error
}

// NewContext creates an unauthenticated session backed by slot.
func NewContext(slot Slot, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{slot: slot, logger: logger}
}

// IsAuthenticated reports whether a token is currently held.
func (c *Context) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Token returns the current token, or the empty string when logged out.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticate stores token in memory and then persists it to the durable
// slot. An empty token is rejected with ErrInvalidToken and leaves the
// session unchanged. A failed durable write returns ErrPersistence while
// the in-memory session stays authenticated: losing durability must not
// block login, but it must not be silent either.
func (c *Context) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.slot.Set(ctx, tokenKey, token); err != nil {
		c.logger.Warn("failed to persist session token", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	c.logger.Debug("session authenticated")
	return nil
}

// Logout clears the in-memory token and deletes the durable copy. Calling
// it while already logged out is a no-op. The in-memory clear always takes
// effect even when the slot delete fails.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	wasAuthenticated := c.token != ""
	c.token = ""
	c.mu.Unlock()

	if !wasAuthenticated {
		return nil
	}

	if err := c.slot.Delete(ctx, tokenKey); err != nil {
		c.logger.Warn("failed to delete persisted session token", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	c.logger.Debug("session logged out")
	return nil
}

// Restore reads the durable slot and, if a non-empty token is present,
// adopts it and returns true. It runs at most once per process; later
// calls return the first result. A failed read is reported but leaves the
// session unauthenticated, the safe default.
func (c *Context) Restore(ctx context.Context) (bool, error) {
	c.restoreOnce.Do(func() {
		token, ok, err := c.slot.Get(ctx, tokenKey)
		if err != nil {
			c.restoreErr = fmt.Errorf("%w: %v", ErrPersistence, err)
			c.logger.Warn("failed to restore session token", zap.Error(err))
			return
		}
		if !ok || token == "" {
			return
		}

		c.mu.Lock()
		c.token = token
		c.mu.Unlock()
		c.restoreResult = true
		c.logger.Debug("session restored from durable storage")
	})
	return c.restoreResult, c.restoreErr
}
