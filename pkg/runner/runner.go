package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/inevo/formflow/internal/logging"
	"github.com/inevo/formflow/pkg/domain"
)

// Engine is the session surface the runner drives. Both *formflow.Engine
// and *session.Guard satisfy it.
type Engine interface {
	StartSession(ctx context.Context, sessionID, userID string) (*domain.State, error)
	HandleInput(ctx context.Context, sessionID, input string) (*domain.State, error)
}

// Runner hosts one interactive session: output new messages, read input,
// feed the engine, repeat until the workflow completes.
type Runner struct {
	engine  Engine
	handler IOHandler
	logger  *slog.Logger

	sessionID      string
	userID         string
	interruptInput string
	onFinish       func(*domain.State)
}

// New creates a Runner for the engine.
func New(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:         engine,
		handler:        NewTextHandler(nil, nil),
		logger:         logging.NewNop(),
		userID:         "user_cli",
		interruptInput: "menu",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the session loop until the workflow completes, input ends,
// or the context is canceled. A SIGINT while reading input is translated
// into the interrupt keyword, which opens the preference menu in-band.
func (r *Runner) Run(ctx context.Context) error {
	signals := NewSignalManager()
	defer signals.Stop()

	state, err := r.engine.StartSession(ctx, r.sessionID, r.userID)
	if err != nil && !errors.Is(err, domain.ErrStepBudgetExceeded) {
		return fmt.Errorf("start session: %w", err)
	}

	printed := 0
	for {
		if err := r.handler.Output(ctx, state.History[printed:]); err != nil {
			return fmt.Errorf("output: %w", err)
		}
		printed = len(state.History)

		if state.WorkflowComplete {
			if r.onFinish != nil {
				r.onFinish(state)
			}
			return nil
		}
		if !state.WaitingForInput {
			r.logger.Warn("workflow halted without requesting input",
				"session_id", state.SessionID, "phase", string(state.Phase))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := r.handler.Input(signals.Context())
		if err != nil {
			signals.CheckRace()
			if signals.Interrupted() {
				// Ctrl+C: open the menu instead of dying, and re-arm so a
				// second Ctrl+C can still land.
				r.logger.Info("interrupt signal, opening menu")
				signals.Reset()
				input = r.interruptInput
			} else if errors.Is(err, io.EOF) {
				return nil
			} else {
				return fmt.Errorf("input: %w", err)
			}
		}
		if input == "" {
			continue
		}

		clean, err := SanitizeInput(input)
		if err != nil {
			r.logger.Warn("input rejected", "error", err)
			continue
		}

		state, err = r.engine.HandleInput(ctx, state.SessionID, clean)
		if err != nil {
			if errors.Is(err, domain.ErrStepBudgetExceeded) {
				r.logger.Warn("turn paused at step budget", "session_id", state.SessionID)
				continue
			}
			return fmt.Errorf("handle input: %w", err)
		}
	}
}
