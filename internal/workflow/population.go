package workflow

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// runFormPopulation renders the filled output documents for every active
// form through the document collaborator and marks the submission submitted.
func (e *Engine) runFormPopulation(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentFormPopulation

	for _, formID := range s.ActiveForms {
		form, ok := s.Forms[formID]
		if !ok {
			continue
		}
		if e.docs == nil {
			continue
		}
		path, err := e.docs.WriteFilled(ctx, formID, form)
		if err != nil {
			e.logger.Error("form fill failed", "form", formID, "error", err)
			continue
		}
		e.logger.Info("form filled", "form", formID, "path", path)
	}

	s.Phase = domain.PhaseVerification
	s.Status = domain.StatusSubmitted
	return nil
}
