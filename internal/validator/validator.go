package validator

import (
	"fmt"
	"strings"

	"github.com/inevo/formflow/pkg/schema"
)

// ValidateSchema checks a form registry for definition problems that Load
// does not reject: common fields missing from the root form, triggers bound
// to unknown fields, question orders referencing unknown sections, and forms
// that nothing can ever activate.
func ValidateSchema(reg *schema.Registry) error {
	var errors []string

	root := reg.RootForm()

	// 1. Common fields must exist on the root form, where they are asked.
	for _, field := range reg.CommonFields() {
		if !reg.Has(root, field) {
			errors = append(errors, fmt.Sprintf("common field '%s' is not defined on root form '%s'", field, root))
		}
	}

	// 2. Triggers fire off answers to root-form fields.
	reachable := map[string]bool{root: true}
	for _, t := range reg.Triggers() {
		if !reg.Has(root, t.Field) {
			errors = append(errors, fmt.Sprintf("trigger on '%s' references a field missing from root form '%s'", t.Field, root))
		}
		if len(t.Affirmative) == 0 {
			errors = append(errors, fmt.Sprintf("trigger on '%s' has no affirmative values and can never fire", t.Field))
		}
		reachable[t.Activates] = true
	}

	// 3. Every non-root form needs a trigger, or it is dead weight.
	for _, formID := range reg.FormIDs() {
		if !reachable[formID] {
			errors = append(errors, fmt.Sprintf("form '%s' is not the root and has no trigger activating it", formID))
		}
	}

	// 4. A form without fields cannot be filled.
	for _, formID := range reg.FormIDs() {
		if len(reg.Fields(formID)) == 0 {
			errors = append(errors, fmt.Sprintf("form '%s' defines no fields", formID))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
