package runner

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (structured) modes.
type IOHandler interface {
	// Output presents newly produced transcript messages to the user.
	Output(ctx context.Context, messages []domain.Message) error

	// Input reads a response from the user. It must honor ctx cancellation:
	// a canceled context aborts the read and returns ctx.Err().
	Input(ctx context.Context) (string, error)
}
