package workflow

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// runCompleteness verifies the active forms and signals the result to the
// email stage. While a correction is outstanding it re-emits the same status
// and goes nowhere, so the notification loop cannot re-enter.
func (e *Engine) runCompleteness(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentCompleteness

	if s.Status == domain.StatusWaitingCorrection {
		e.logger.Info("correction outstanding, not re-notifying")
		s.NextAgent = domain.AgentNone
		return nil
	}

	miss := e.resolver.NextMissingField(s.Forms, s.ActiveForms)
	if miss == nil {
		e.logger.Info("all active forms complete")
		s.Status = domain.StatusAnalyzedComplete
		s.NextAgent = domain.AgentEmail
		return nil
	}

	e.logger.Info("missing field found", "form", miss.FormID, "field", miss.Field)
	s.Status = domain.StatusAnalyzedIncomplete
	s.MissingFieldInfo = miss.Field + " (" + miss.Description + ")"
	s.NextAgent = domain.AgentEmail
	return nil
}
