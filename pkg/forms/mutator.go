package forms

import (
	"fmt"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/schema"
)

// Mutator applies validated values to form data, keeping every form that
// shares a field name in sync and evaluating conditional-activation triggers.
type Mutator struct {
	reg *schema.Registry
}

// NewMutator creates a mutator over the given registry.
func NewMutator(reg *schema.Registry) *Mutator {
	return &Mutator{reg: reg}
}

// UpdateField sets the field on the target form and overwrites the same
// field name on every other known form, active or not. The overwrite is
// unconditional: a single logical value per field name across the whole set.
// Returns how many other forms received the value.
func (m *Mutator) UpdateField(forms map[string]domain.FormData, formID, field, value string) (int, error) {
	target, ok := forms[formID]
	if !ok || !m.reg.Has(formID, field) {
		return 0, fmt.Errorf("cannot map %s.%s: %w", formID, field, domain.ErrUnknownField)
	}
	target[field] = value

	propagated := 0
	for _, otherID := range m.reg.FormIDs() {
		if otherID == formID {
			continue
		}
		other, ok := forms[otherID]
		if !ok || !m.reg.Has(otherID, field) {
			continue
		}
		other[field] = value
		propagated++
	}
	return propagated, nil
}

// Activations returns the forms the given update should activate, per the
// registry's trigger table. The caller is responsible for appending them to
// the active set (idempotently).
func (m *Mutator) Activations(field, value string) []string {
	var ids []string
	for _, t := range m.reg.Triggers() {
		if t.Field == field && t.Matches(value) {
			ids = append(ids, t.Activates)
		}
	}
	return ids
}

// Filled counts filled and total fields across all known forms, for progress
// reporting.
func (m *Mutator) Filled(forms map[string]domain.FormData) (filled, total int) {
	for _, formID := range m.reg.FormIDs() {
		form, ok := forms[formID]
		if !ok {
			continue
		}
		for _, name := range m.reg.Fields(formID) {
			total++
			if IsFilled(form[name]) {
				filled++
			}
		}
	}
	return filled, total
}
