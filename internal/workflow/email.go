package workflow

import (
	"context"
	"fmt"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/ports"
)

// runEmailProcessing branches on the completeness signal: a complete analysis
// confirms and binds, an incomplete one asks for the missing information and
// hands control back to the conversation, and anything else sends the initial
// status-report email.
func (e *Engine) runEmailProcessing(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentEmail

	switch s.Status {
	case domain.StatusAnalyzedComplete:
		e.send(ctx, ports.Email{
			To:      s.UserID + "@example.com",
			Subject: "Application Complete!",
			Body: "Thank you for sending the forms. We have analyzed them and confirmed everything is complete.\n" +
				"We will proceed to bind your policy.",
		})
		s.Status = domain.StatusBound
		s.NextAgent = domain.AgentNone
		return nil

	case domain.StatusAnalyzedIncomplete:
		missing := s.MissingFieldInfo
		if missing == "" {
			missing = "fields"
		}
		e.send(ctx, ports.Email{
			To:      s.UserID + "@example.com",
			Subject: "Action Required - Missing Information",
			Body: "We analyzed your email. It looks like we are still missing: " + missing + ".\n" +
				"Please reply with the completed info or chat with us.",
		})
		s.Status = domain.StatusWaitingCorrection
		s.NextAgent = domain.AgentConversation
		return nil
	}

	// Initial send: status report with real fill progress.
	filled, total := e.mutator.Filled(s.Forms)
	percent := 0.0
	if total > 0 {
		percent = float64(filled) / float64(total) * 100
	}
	e.logger.Info("sending status report", "filled", filled, "total", total)
	e.send(ctx, ports.Email{
		To:      s.UserID + "@example.com",
		Subject: "Your Application Status",
		Body: fmt.Sprintf("You have completed %.1f%% of the application.\n"+
			"Attached are the forms filled so far.", percent),
	})
	s.Status = domain.StatusEmailed
	s.NextAgent = domain.AgentNone
	return nil
}

// send delivers through the mailer when one is configured. Delivery failures
// are logged, never fatal: the mail channel is simulated best-effort.
func (e *Engine) send(ctx context.Context, msg ports.Email) {
	if e.mailer == nil {
		e.logger.Debug("no mailer configured, dropping message", "subject", msg.Subject)
		return
	}
	if err := e.mailer.Send(ctx, msg); err != nil {
		e.logger.Error("email delivery failed", "subject", msg.Subject, "error", err)
	}
}
