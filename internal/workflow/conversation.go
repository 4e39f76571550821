package workflow

import (
	"context"
	"strings"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/forms"
	"github.com/inevo/formflow/pkg/ports"
)

// generate asks the text collaborator for a phrasing, substituting the
// deterministic fallback on any failure or empty response. The workflow never
// blocks on generation quality.
func (e *Engine) generate(ctx context.Context, role ports.PromptRole, in ports.PromptInputs, fallback string) string {
	if e.textgen == nil {
		return fallback
	}
	out, err := e.textgen.Generate(ctx, role, in)
	if err != nil {
		e.logger.Debug("text generation failed, using fallback", "role", string(role), "error", err)
		return fallback
	}
	if strings.TrimSpace(out) == "" {
		return fallback
	}
	return out
}

// runConversation drives the question loop: it resolves the next missing
// field for the current phase, asks for it (with a transition note when the
// active form changed) and suspends. When nothing is missing it advances the
// phase instead.
func (e *Engine) runConversation(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentConversation

	// A rejected input already produced a correction message; just wait.
	if len(s.ValidationErrors) > 0 {
		e.logger.Warn("validation errors outstanding, suspending", "count", len(s.ValidationErrors))
		s.WaitingForInput = true
		return nil
	}

	var miss *forms.Missing
	if s.Phase == domain.PhaseCommonFields {
		miss = e.resolver.NextMissingCommonField(s.Forms)
	} else {
		miss = e.resolver.NextMissingField(s.Forms, s.ActiveForms)
	}

	if miss == nil {
		if s.Phase == domain.PhaseCommonFields {
			e.logger.Info("common fields complete")
			s.FieldStatus = map[string]string{domain.StatusKeyCommonComplete: "true"}
			s.Phase = domain.PhaseCommonCompleted
			return nil
		}
		e.logger.Info("all active forms complete")
		s.FieldStatus = map[string]string{
			domain.StatusKeyCommonComplete: "true",
			domain.StatusKeyFormsFilled:    "true",
		}
		s.Phase = domain.PhaseSubmission
		return nil
	}

	var planning string
	if last := s.FieldStatus[domain.StatusKeyLastActiveForm]; last != "" && last != miss.FormID {
		prev, next := e.reg.Title(last), e.reg.Title(miss.FormID)
		e.logger.Info("section transition", "from", prev, "to", next)
		planning = e.generate(ctx, ports.PromptPlanning, ports.PromptInputs{
			PrevSection: prev,
			NextSection: next,
		}, "Moving from "+prev+" to "+next+"...")
	}
	if s.FieldStatus == nil {
		s.FieldStatus = map[string]string{}
	}
	s.FieldStatus[domain.StatusKeyLastActiveForm] = miss.FormID

	// Document-derived tooltips beat the schema description when available.
	description := ""
	if e.docs != nil {
		description = e.docs.FieldTooltip(miss.Field)
	}
	if description == "" {
		description = miss.Description
	}

	e.logger.Info("asking for field", "form", miss.FormID, "field", miss.Field)
	question := e.generate(ctx, ports.PromptQuestion, ports.PromptInputs{
		Field:       miss.Field,
		Description: description,
		Phase:       e.reg.Title(miss.FormID),
	}, "Please provide your "+miss.Field+".")

	message := question
	if planning != "" {
		message = planning + "\n\n" + question
	}

	s.AppendMessage("assistant", strings.TrimSpace(message))
	s.PendingField = miss.FormID + ":" + miss.Field
	s.WaitingForInput = true
	s.InputValid = false
	s.NextAgent = domain.AgentNone
	return nil
}
