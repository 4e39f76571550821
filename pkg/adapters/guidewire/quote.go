// Package guidewire implements ports.QuoteService against a simulated
// policy-administration backend. Submission IDs follow the carrier's
// "qw_" + 8 hex characters convention.
package guidewire

import (
	"context"

	"github.com/google/uuid"

	"github.com/inevo/formflow/pkg/ports"
)

// DefaultQuoteAmount is the flat simulated premium.
const DefaultQuoteAmount = 1500.00

// Service implements ports.QuoteService.
type Service struct {
	amount float64
}

// New creates a simulated quoting service.
func New() *Service {
	return &Service{amount: DefaultQuoteAmount}
}

// WithAmount overrides the simulated premium.
func (s *Service) WithAmount(amount float64) *Service {
	s.amount = amount
	return s
}

// RequestQuote implements ports.QuoteService. The forms payload is accepted
// for interface fidelity; the simulation rates everything the same.
func (s *Service) RequestQuote(_ context.Context, _ map[string]map[string]string) (ports.Quote, error) {
	id := "qw_" + uuid.NewString()[:8]
	return ports.Quote{ID: id, Amount: s.amount}, nil
}
