package workflow

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// runDocIntel extracts field values from a queued document and applies each
// through the mutator against the root form, then routes to verification.
// Extraction failures yield zero fields, never an error: the user can always
// continue by chat.
func (e *Engine) runDocIntel(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentDocIntel

	if s.IncomingAttachment == "" {
		return nil
	}

	e.logger.Info("processing attachment", "path", s.IncomingAttachment)

	var extracted map[string]string
	if e.docs != nil {
		extracted = e.docs.ExtractFields(ctx, s.IncomingAttachment)
	}

	rootID := e.reg.RootForm()
	updates := 0
	for field, value := range extracted {
		if _, err := e.mutator.UpdateField(s.Forms, rootID, field, value); err != nil {
			e.logger.Warn("extracted field not in schema", "field", field)
			continue
		}
		updates++
	}
	e.logger.Info("document applied", "extracted", len(extracted), "updated", updates)

	s.IncomingAttachment = ""
	s.NextAgent = domain.AgentCompleteness
	return nil
}
