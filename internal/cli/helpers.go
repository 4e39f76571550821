package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/inevo/formflow/internal/logging"
	"github.com/inevo/formflow/pkg/domain"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAgentEnter: func(ctx context.Context, e *domain.AgentEvent) {
			logger.Debug("Enter Agent", "agent", string(e.Agent), "session_id", e.SessionID)
		},
		OnAgentLeave: func(ctx context.Context, e *domain.AgentEvent) {
			logger.Debug("Leave Agent", "agent", string(e.Agent), "duration", e.Duration)
		},
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			logger.Debug("Route", "phase", string(e.Phase), "next", string(e.Next), "reason", e.Reason)
		},
		OnFieldUpdate: func(ctx context.Context, e *domain.FieldEvent) {
			logger.Debug("Field Update", "form_id", e.FormID, "field", e.Field, "propagated", e.Propagated)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError maps user-initiated interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
