// Package bootstrap runs the one-time startup sequence: initialize the
// place store and restore the session, then release the splash gate. The
// gate always releases, even when a subsystem fails; failures degrade the
// corresponding feature instead of blocking the UI.
package bootstrap

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"placekeeper/internal/session"
	"placekeeper/internal/store"
)

// State is the bootstrap lifecycle phase.
type State int

const (
	StateNotStarted State = iota
	StateInitializing
	// StateReady means both subsystems came up cleanly.
	StateReady
	// StateFailed means at least one subsystem degraded. The gate is
	// released regardless and the app continues without that feature.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records which subsystems degraded during startup.
type Result struct {
	StoreErr        error
	RestoreErr      error
	SessionRestored bool
}

// Degraded reports whether any subsystem failed to come up.
func (r Result) Degraded() bool {
	return r.StoreErr != nil || r.RestoreErr != nil
}

// Bootstrap orchestrates one-time startup. Run executes the sequence at
// most once; the gate channel is closed when startup completes.
type Bootstrap struct {
	places  *store.PlaceStore
	session *session.Context
	logger  *zap.Logger

	once   sync.Once
	gate   chan struct{}
	mu     sync.RWMutex
	state  State
	result Result
}

// New creates a bootstrap for the given subsystems.
func New(places *store.PlaceStore, sess *session.Context, logger *zap.Logger) *Bootstrap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrap{
		places:  places,
		session: sess,
		logger:  logger,
		gate:    make(chan struct{}),
	}
}

// Run executes the startup sequence once and returns its result. Later
// calls return the recorded result without re-running anything. Store
// init and session restore are independent and run concurrently; both
// complete, success or failure, before the gate releases.
func (b *Bootstrap) Run(ctx context.Context) Result {
	b.once.Do(func() {
		b.setState(StateInitializing)

		var result Result
		g, gctx := errgroup.WithContext(ctx)

		// Each subtask records its own failure and returns nil: one
		// subsystem failing must not cancel the other or hang the gate.
		g.Go(func() error {
			result.StoreErr = b.places.Init(gctx)
			return nil
		})
		g.Go(func() error {
			result.SessionRestored, result.RestoreErr = b.session.Restore(gctx)
			return nil
		})
		_ = g.Wait()

		if result.StoreErr != nil {
			b.logger.Warn("place store degraded", zap.Error(result.StoreErr))
		}
		if result.RestoreErr != nil {
			b.logger.Warn("session restore degraded", zap.Error(result.RestoreErr))
		}

		b.mu.Lock()
		b.result = result
		if result.Degraded() {
			b.state = StateFailed
		} else {
			b.state = StateReady
		}
		b.mu.Unlock()

		b.logger.Info("startup complete",
			zap.Stringer("state", b.State()),
			zap.Bool("session_restored", result.SessionRestored))

		close(b.gate)
	})

	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.result
}

// Ready reports whether the gate has been released.
func (b *Bootstrap) Ready() bool {
	select {
	case <-b.gate:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate releases or ctx is done.
func (b *Bootstrap) Wait(ctx context.Context) error {
	select {
	case <-b.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current lifecycle phase.
func (b *Bootstrap) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Degraded returns the startup result recorded by Run.
func (b *Bootstrap) Degraded() Result {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.result
}

func (b *Bootstrap) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}
