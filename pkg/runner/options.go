package runner

import (
	"log/slog"

	"github.com/inevo/formflow/pkg/domain"
)

// Option configures the Runner.
type Option func(*Runner)

// WithHandler sets the IO strategy (default: text on Stdin/Stdout).
func WithHandler(h IOHandler) Option {
	return func(r *Runner) { r.handler = h }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithSessionID resumes or names the session (default: generated).
func WithSessionID(id string) Option {
	return func(r *Runner) { r.sessionID = id }
}

// WithUserID sets the applicant identifier (default: "user_cli").
func WithUserID(id string) Option {
	return func(r *Runner) { r.userID = id }
}

// WithInterruptInput overrides the input injected on SIGINT (default:
// "menu", which the orchestrator treats as an interrupt keyword).
func WithInterruptInput(input string) Option {
	return func(r *Runner) { r.interruptInput = input }
}

// WithOnFinish registers a callback invoked with the final state when the
// workflow completes.
func WithOnFinish(fn func(*domain.State)) Option {
	return func(r *Runner) { r.onFinish = fn }
}
