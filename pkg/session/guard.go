// Package session serializes concurrent access to workflow sessions. The
// engine's load-run-save turn is not atomic on its own, so servers hosting
// many clients wrap it in a Guard: one turn per session at a time, with
// reference-counted locks that are garbage collected when idle.
package session

import (
	"context"
	"sync"

	"github.com/inevo/formflow/pkg/domain"
)

// Engine is the session surface the Guard protects. *formflow.Engine
// satisfies it.
type Engine interface {
	StartSession(ctx context.Context, sessionID, userID string) (*domain.State, error)
	HandleInput(ctx context.Context, sessionID, input string) (*domain.State, error)
	Session(ctx context.Context, sessionID string) (*domain.State, error)
	EndSession(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Guard wraps an Engine with per-session mutual exclusion.
type Guard struct {
	engine Engine

	mu    sync.Mutex // protects locks
	locks map[string]*lockEntry
}

// NewGuard creates a Guard over the engine.
func NewGuard(engine Engine) *Guard {
	return &Guard{
		engine: engine,
		locks:  make(map[string]*lockEntry),
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must Lock entry.mu and call release(sessionID) after unlocking.
func (g *Guard) acquire(sessionID string) *lockEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		g.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (g *Guard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(g.locks, sessionID)
	}
}

// withLock executes fn while holding the session's lock.
func (g *Guard) withLock(sessionID string, fn func() error) error {
	entry := g.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		g.release(sessionID)
	}()
	return fn()
}

// StartSession runs the opening turn under the session lock.
func (g *Guard) StartSession(ctx context.Context, sessionID, userID string) (*domain.State, error) {
	var state *domain.State
	err := g.withLock(sessionID, func() error {
		var err error
		state, err = g.engine.StartSession(ctx, sessionID, userID)
		return err
	})
	return state, err
}

// HandleInput runs one input turn under the session lock.
func (g *Guard) HandleInput(ctx context.Context, sessionID, input string) (*domain.State, error) {
	var state *domain.State
	err := g.withLock(sessionID, func() error {
		var err error
		state, err = g.engine.HandleInput(ctx, sessionID, input)
		return err
	})
	return state, err
}

// Session reads the session under its lock, so readers never observe a
// half-written turn.
func (g *Guard) Session(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := g.withLock(sessionID, func() error {
		var err error
		state, err = g.engine.Session(ctx, sessionID)
		return err
	})
	return state, err
}

// EndSession deletes the session under its lock.
func (g *Guard) EndSession(ctx context.Context, sessionID string) error {
	return g.withLock(sessionID, func() error {
		return g.engine.EndSession(ctx, sessionID)
	})
}

// Sessions delegates to the engine; listing needs no per-session lock.
func (g *Guard) Sessions(ctx context.Context) ([]string, error) {
	return g.engine.Sessions(ctx)
}
