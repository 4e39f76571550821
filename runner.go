package formflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/inevo/formflow/pkg/domain"
)

// Runner handles the interactive chat loop of the FormFlow engine using
// provided IO. This allows for easy testing and integration with different
// frontends (CLI, TUI, HTTP handlers driving a transcript).
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	Headless  bool
	Renderer  ContentRenderer
	SessionID string
	UserID    string
}

// ContentRenderer transforms assistant content before outputting it. This
// allows for TUI rendering (markdown to ANSI) without coupling the core
// package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set by the caller
// (use os.Stdin / os.Stdout for an interactive terminal).
func NewRunner() *Runner {
	return &Runner{UserID: "user_cli"}
}

// Run executes the chat loop until the workflow completes or input ends.
// Two local commands are handled before anything reaches the engine:
// "status" prints a data summary, "quit" exits.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	state, err := engine.StartSession(ctx, r.SessionID, r.UserID)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	printed := 0
	for {
		// 1. Display phase: print assistant turns added since last time.
		for _, msg := range state.History[printed:] {
			if msg.Role == "assistant" {
				r.print(msg.Content)
			}
		}
		printed = len(state.History)

		if state.WorkflowComplete {
			r.finish(engine, state)
			return nil
		}
		if !state.WaitingForInput {
			fmt.Fprintln(r.Output, "Workflow ended unexpectedly.")
			r.printStatus(engine, state)
			return nil
		}

		// 2. Input phase.
		fmt.Fprint(r.Output, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		switch strings.ToLower(input) {
		case "":
			continue
		case "quit":
			fmt.Fprintln(r.Output, "Goodbye!")
			return nil
		case "status":
			r.printStatus(engine, state)
			continue
		}

		// 3. Engine phase.
		state, err = engine.HandleInput(ctx, state.SessionID, input)
		if err != nil {
			if err == domain.ErrStepBudgetExceeded {
				fmt.Fprintln(r.Output, "Paused. Type to continue.")
				continue
			}
			return fmt.Errorf("handle input: %w", err)
		}
	}
}

func (r *Runner) print(content string) {
	output := content
	if r.Renderer != nil {
		if rendered, err := r.Renderer(content); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}

// printStatus prints the filled fields of the root form plus phase, status
// and overall progress.
func (r *Runner) printStatus(engine *Engine, state *domain.State) {
	rootID := engine.Registry().RootForm()
	fmt.Fprintf(r.Output, "\nCurrent %s data:\n", engine.Registry().Title(rootID))
	empty := true
	for _, name := range engine.Registry().Fields(rootID) {
		if v := state.Forms[rootID][name]; v != "" {
			fmt.Fprintf(r.Output, "  %s: %s\n", name, v)
			empty = false
		}
	}
	if empty {
		fmt.Fprintln(r.Output, "  (no data collected yet)")
	}
	filled, total := engine.Progress(state)
	fmt.Fprintf(r.Output, "Phase: %s\nStatus: %s\nProgress: %d/%d fields\n\n",
		state.Phase, state.Status, filled, total)
}

// finish prints the terminal banner, including the quote when one was
// generated.
func (r *Runner) finish(engine *Engine, state *domain.State) {
	if state.Status == domain.StatusQuoted {
		fmt.Fprintln(r.Output, "Quote generated successfully!")
		fmt.Fprintf(r.Output, "  Quote ID: %s\n", state.QuoteID)
		fmt.Fprintf(r.Output, "  Amount: $%.2f\n", state.QuoteAmount)
	}
	r.printStatus(engine, state)
}
