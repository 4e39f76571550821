package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/inevo/formflow/pkg/domain"
)

// JSONHandler implements a line-delimited JSON protocol for driving sessions
// programmatically: every transcript message is emitted as one JSON object,
// and inputs arrive as {"input": "..."} lines. Useful for piping the engine
// into test harnesses or non-Go frontends.
type JSONHandler struct {
	scanner *bufio.Scanner
	encoder *json.Encoder

	pending chan readResult
}

type jsonEvent struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type jsonInput struct {
	Input string `json:"input"`
}

// NewJSONHandler creates a handler speaking JSON lines on the given streams.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	return &JSONHandler{
		scanner: bufio.NewScanner(r),
		encoder: json.NewEncoder(w),
	}
}

// Output emits one JSON line per transcript message.
func (h *JSONHandler) Output(ctx context.Context, messages []domain.Message) error {
	for _, msg := range messages {
		ev := jsonEvent{Type: "message", Role: msg.Role, Content: msg.Content}
		if err := h.encoder.Encode(ev); err != nil {
			return err
		}
	}
	return nil
}

// Input reads one {"input": "..."} line. Like the text handler, the read is
// detached so context cancellation unblocks the caller.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if h.pending == nil {
		h.pending = make(chan readResult, 1)
		go func(ch chan readResult) {
			if !h.scanner.Scan() {
				err := h.scanner.Err()
				if err == nil {
					err = io.EOF
				}
				ch <- readResult{err: err}
				return
			}
			ch <- readResult{text: h.scanner.Text()}
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
		var in jsonInput
		if err := json.Unmarshal([]byte(res.text), &in); err != nil {
			return "", fmt.Errorf("invalid input line: %w", err)
		}
		return in.Input, nil
	}
}
