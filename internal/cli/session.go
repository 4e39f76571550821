package cli

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/inevo/formflow"
	"github.com/inevo/formflow/internal/presentation/tui"
	"github.com/inevo/formflow/pkg/runner"
)

// RunInteractive hosts a chat session on the terminal: banner, markdown
// rendering, local 'status' and 'quit' commands.
func RunInteractive(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	engine, cleanup, err := CreateEngine(opts, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner(formflow.Version)
	}

	r := formflow.NewRunner()
	r.Input = os.Stdin
	r.Output = os.Stdout
	r.SessionID = opts.SessionID
	if opts.UserID != "" {
		r.UserID = opts.UserID
	}
	if interactive {
		r.Renderer = tui.NewRenderer()
	}

	return handleExecutionError(r.Run(context.Background(), engine))
}

// RunHeadless drives a session over strict line-based IO: plain text or
// NDJSON. Signals interrupt into the preference menu instead of killing the
// process, and input passes through the sanitizer.
func RunHeadless(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	engine, cleanup, err := CreateEngine(opts, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithSessionID(opts.SessionID),
	}
	if opts.UserID != "" {
		runnerOpts = append(runnerOpts, runner.WithUserID(opts.UserID))
	}
	if opts.JSON {
		runnerOpts = append(runnerOpts, runner.WithHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)))
	}

	r := runner.New(engine, runnerOpts...)
	return handleExecutionError(r.Run(context.Background()))
}
