package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/ports"
)

// runInputValidator checks the pending raw value against the validation rule
// table. On success it marks the input valid for the mapper; on failure it
// records the error, tells the user what went wrong and suspends for a retry.
func (e *Engine) runInputValidator(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentInputValidator

	if s.PendingField == "" {
		return nil
	}

	res := e.rules.Validate(s.PendingField, s.PendingValue)
	if res.Valid {
		e.logger.Info("input valid", "field", s.PendingField)
		s.InputValid = true
		s.ValidatedValue = res.Value
		return nil
	}

	e.logger.Warn("input rejected", "field", s.PendingField, "reason", res.Message)

	reflection := e.generate(ctx, ports.PromptReflection, ports.PromptInputs{
		Field:    bareFieldName(s.PendingField),
		RawInput: s.PendingValue,
		Error:    res.Message,
	}, "I wasn't able to understand that input. "+res.Message+" Could you try again?")

	s.InputValid = false
	s.ValidationErrors = append(s.ValidationErrors, domain.ValidationError{
		Field: s.PendingField,
		Error: res.Message,
	})
	s.AppendMessage("assistant", reflection)
	s.WaitingForInput = true
	s.PendingValue = ""
	return nil
}

// runSchemaMapper writes the validated value into the target form, propagates
// it to every other form sharing the field name, and evaluates activation
// triggers. Consumes the pending pipeline state and clears the validation
// error list: the only place it is ever cleared.
func (e *Engine) runSchemaMapper(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentSchemaMapper

	if !s.InputValid {
		return nil
	}

	value := s.ValidatedValue
	if formID, fieldName, ok := strings.Cut(s.PendingField, ":"); ok {
		propagated, err := e.mutator.UpdateField(s.Forms, formID, fieldName, value)
		if err != nil {
			e.logger.Error("mapping failed", "field", s.PendingField, "error", err)
		} else {
			e.logger.Info("field mapped", "form", formID, "field", fieldName, "propagated", propagated)
			if e.hooks.OnFieldUpdate != nil {
				e.hooks.OnFieldUpdate(ctx, &domain.FieldEvent{
					Timestamp: time.Now(), SessionID: s.SessionID,
					FormID: formID, Field: fieldName, Propagated: propagated,
				})
			}
			for _, id := range e.mutator.Activations(fieldName, value) {
				if s.Activate(id) {
					e.logger.Info("form activated", "form", id, "trigger", fieldName)
				}
			}
		}
	} else {
		e.logger.Warn("unformatted field target, ambiguous mapping", "field", s.PendingField)
	}

	s.PendingField = ""
	s.PendingValue = ""
	s.ValidatedValue = ""
	s.InputValid = false
	s.ValidationErrors = nil
	return nil
}

// bareFieldName strips the "<formID>:" prefix from a pending-field target.
func bareFieldName(target string) string {
	if _, field, ok := strings.Cut(target, ":"); ok {
		return field
	}
	return target
}
