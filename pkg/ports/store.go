package ports

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// StateStore defines the interface for persisting session state.
// This allows for durable execution, enabling "Stop & Resume" workflows.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}

// SessionLister is an optional StateStore extension for enumerating sessions.
type SessionLister interface {
	List(ctx context.Context) ([]string, error)
}
