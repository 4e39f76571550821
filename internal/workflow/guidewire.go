package workflow

import (
	"context"

	"github.com/inevo/formflow/pkg/domain"
)

// runGuidewire submits the collected data for rating and records the quote.
// The quoted status ends the workflow on the next orchestrator pass.
func (e *Engine) runGuidewire(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentGuidewire

	if e.quotes != nil {
		payload := make(map[string]map[string]string, len(s.Forms))
		for id, form := range s.Forms {
			payload[id] = form
		}
		quote, err := e.quotes.RequestQuote(ctx, payload)
		if err != nil {
			e.logger.Error("quote request failed", "error", err)
		} else {
			e.logger.Info("quote received", "quote_id", quote.ID, "amount", quote.Amount)
			s.QuoteID = quote.ID
			s.QuoteAmount = quote.Amount
		}
	}

	s.Status = domain.StatusQuoted
	return nil
}
