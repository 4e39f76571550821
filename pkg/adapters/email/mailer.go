// Package email implements ports.Mailer as a simulated outbox. No real SMTP
// traffic ever leaves the process: the console mailer prints the message for
// demo runs and the recording mailer captures it for tests.
package email

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/inevo/formflow/pkg/ports"
)

// ConsoleMailer writes simulated messages to a writer.
type ConsoleMailer struct {
	out io.Writer
}

// NewConsoleMailer creates a mailer printing to out.
func NewConsoleMailer(out io.Writer) *ConsoleMailer {
	return &ConsoleMailer{out: out}
}

// Send implements ports.Mailer.
func (m *ConsoleMailer) Send(_ context.Context, msg ports.Email) error {
	_, err := fmt.Fprintf(m.out,
		"\n[Simulated Email Sent]\nTo: %s\nSubject: %s\n\n%s\n\n",
		msg.To, msg.Subject, msg.Body)
	return err
}

// RecordingMailer captures sent messages in memory. Safe for concurrent use.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []ports.Email
}

// NewRecordingMailer creates an empty recording mailer.
func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

// Send implements ports.Mailer.
func (m *RecordingMailer) Send(_ context.Context, msg ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of everything delivered so far.
func (m *RecordingMailer) Sent() []ports.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Email(nil), m.sent...)
}
