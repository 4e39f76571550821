package forms

import (
	"strings"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/schema"
)

// Missing identifies the next unfilled field the conversation should ask for.
type Missing struct {
	FormID      string
	Field       string
	Description string
}

// Resolver finds the next unfilled field across the form set, applying the
// registry's curated ordering and the primary-variant preference heuristic.
type Resolver struct {
	reg *schema.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *schema.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// IsFilled reports whether a stored value counts as an answer. Empty strings
// and the placeholder artifacts "None", "nan" and "[]" do not.
func IsFilled(value string) bool {
	switch strings.TrimSpace(value) {
	case "", "None", "nan", "[]":
		return false
	}
	return true
}

// NextMissingCommonField scans only the root form's common-field subset, in
// fixed order, and returns the first missing field. One question at a time:
// the full missing set is never materialized.
func (r *Resolver) NextMissingCommonField(forms map[string]domain.FormData) *Missing {
	rootID := r.reg.RootForm()
	root, ok := forms[rootID]
	if !ok {
		return nil
	}
	for _, name := range r.reg.CommonFields() {
		if !IsFilled(root[name]) {
			return &Missing{FormID: rootID, Field: name, Description: r.reg.Description(rootID, name)}
		}
	}
	return nil
}

// NextMissingField scans the active forms in registry priority order. Within
// each form the curated section order is checked first; remaining schema
// fields are then scanned with primary-variant names (suffix "_a", or no
// letter suffix at all) preferred over alternates. An alternate-suffix field
// is only returned once no preferred field is missing anywhere, so nothing is
// skipped forever.
func (r *Resolver) NextMissingField(forms map[string]domain.FormData, activeFormIDs []string) *Missing {
	active := make(map[string]bool, len(activeFormIDs))
	for _, id := range activeFormIDs {
		active[id] = true
	}

	var fallback *Missing

	for _, formID := range r.reg.FormIDs() {
		if len(activeFormIDs) > 0 && !active[formID] {
			continue
		}
		form, ok := forms[formID]
		if !ok {
			continue
		}

		ordered := r.reg.SectionOrder(formID)
		inSection := make(map[string]bool, len(ordered))
		for _, name := range ordered {
			inSection[name] = true
			if !r.reg.Has(formID, name) {
				continue
			}
			if !IsFilled(form[name]) {
				return &Missing{FormID: formID, Field: name, Description: r.reg.Description(formID, name)}
			}
		}

		for _, name := range r.reg.Fields(formID) {
			if inSection[name] {
				continue
			}
			if IsFilled(form[name]) {
				continue
			}
			m := &Missing{FormID: formID, Field: name, Description: r.reg.Description(formID, name)}
			if isPrimaryVariant(name) {
				return m
			}
			if fallback == nil {
				fallback = m
			}
		}
	}
	return fallback
}

// isPrimaryVariant reports whether a field name looks like the first instance
// of a repeated group ("_a" suffix) rather than an obscure alternate slot.
func isPrimaryVariant(name string) bool {
	if strings.HasSuffix(name, "_a") {
		return true
	}
	if len(name) < 2 {
		return true
	}
	c := name[len(name)-1]
	return !(name[len(name)-2] == '_' && c >= 'b' && c <= 'z')
}
