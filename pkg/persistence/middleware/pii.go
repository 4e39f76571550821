package middleware

import (
	"context"
	"regexp"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/ports"
)

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks form values whose field
// name matches one of the patterns before persistence. Intended for stores
// that must not retain identifiers like FEIN or phone numbers; masking is
// lossy on purpose.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	// Deep clone to avoid side effects on the in-memory state used by the
	// engine.
	cloned := state.Clone()
	maskForms(cloned.Forms, m.patterns)
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	if lister, ok := m.next.(ports.SessionLister); ok {
		return lister.List(ctx)
	}
	return nil, nil
}

func maskForms(forms map[string]domain.FormData, patterns []*regexp.Regexp) {
	for _, form := range forms {
		for field, value := range form {
			if value == "" {
				continue
			}
			for _, p := range patterns {
				if p.MatchString(field) {
					form[field] = "***"
					break
				}
			}
		}
	}
}
