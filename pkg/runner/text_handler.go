package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inevo/formflow/pkg/domain"
)

// ContentRenderer transforms assistant content before outputting it
// (markdown to ANSI for TUI mode).
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// pending carries a read that survived a canceled Input call; the next
	// call consumes it instead of starting a second reader on the same
	// buffered stream.
	pending chan readResult
}

type readResult struct {
	text string
	err  error
}

// NewTextHandler creates a handler for standard text IO. Nil arguments
// default to Stdin/Stdout.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

// Output prints the assistant side of the transcript.
func (h *TextHandler) Output(ctx context.Context, messages []domain.Message) error {
	for _, msg := range messages {
		if msg.Role != "assistant" {
			continue
		}
		output := msg.Content
		if h.Renderer != nil {
			if rendered, err := h.Renderer(msg.Content); err == nil {
				output = rendered
			}
		}
		if _, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output)); err != nil {
			return err
		}
	}
	return nil
}

// Input prompts and reads one line. The read runs in a goroutine so a
// canceled context (e.g. SIGINT) unblocks immediately even while the
// terminal read is still pending.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	fmt.Fprint(h.Writer, "> ")

	if h.pending == nil {
		h.pending = make(chan readResult, 1)
		go func(ch chan readResult) {
			text, err := h.Reader.ReadString('\n')
			ch <- readResult{text: text, err: err}
		}(h.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-h.pending:
		h.pending = nil
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}
