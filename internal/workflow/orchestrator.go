package workflow

import (
	"strings"

	"github.com/inevo/formflow/pkg/domain"
)

// interruptKeywords open the preference menu from anywhere. Matching is
// substring on the lowercased input, so "please stop" works.
var interruptKeywords = []string{
	"menu", "stop", "options", "change mode", "switch mode", "pause", "exit", "quit",
}

// nullSentinels are literal inputs treated as no answer at all.
var nullSentinels = map[string]bool{
	"none": true, "nan": true, "null": true, "undefined": true,
}

// route is the orchestrator: one decision per control-loop iteration,
// evaluated in strict priority order. It may patch interrupt-related state
// (attachment stash, sentinel pending field, phase reset) but never form
// data. AgentNone means halt.
func (e *Engine) route(s *domain.State) (domain.AgentID, string) {
	// 1. Already complete.
	if s.WorkflowComplete {
		s.CurrentAgent = domain.AgentOrchestrator
		return domain.AgentNone, "workflow already complete"
	}

	// 2. Suspended and nothing new arrived. CurrentAgent is left untouched
	// so resumption knows where it paused.
	if s.WaitingForInput && s.PendingValue == "" {
		return domain.AgentNone, "waiting for user input"
	}

	// 3. Terminal submission status ends the workflow. "draft" and the
	// analysis statuses are intermediate.
	if s.Status.Terminal() {
		s.CurrentAgent = domain.AgentOrchestrator
		s.WorkflowComplete = true
		return domain.AgentNone, "submission status " + string(s.Status) + " is final"
	}

	// 4. Interrupt inspection: the user may upload a document or ask for the
	// menu at any point, regardless of what question is outstanding.
	if s.PendingField == domain.GlobalInterrupt || (s.PendingValue != "" && !s.WaitingForInput) {
		val := strings.ToLower(strings.TrimSpace(s.PendingValue))

		if path, ok := ingestPath(val); ok {
			s.CurrentAgent = domain.AgentOrchestrator
			s.IncomingAttachment = path
			s.PendingValue = ""
			return domain.AgentDocIntel, "incoming document attachment"
		}

		for _, kw := range interruptKeywords {
			if strings.Contains(val, kw) {
				s.CurrentAgent = domain.AgentOrchestrator
				s.PendingValue = ""
				s.PendingField = domain.GlobalInterrupt
				s.Phase = domain.PhaseCommonCompleted
				return domain.AgentUserPreference, "interrupt keyword " + kw
			}
		}
	}

	// 5. Menu answer still outstanding with no fresh input this tick.
	if s.PendingField == domain.GlobalInterrupt {
		s.CurrentAgent = domain.AgentOrchestrator
		return domain.AgentUserPreference, "menu answer outstanding"
	}

	// 6. Follow an explicit routing hint from the previous agent (preference
	// decision, completeness -> email, email -> conversation, doc intel ->
	// completeness). Consumed exactly once.
	if s.NextAgent != domain.AgentNone {
		next := s.NextAgent
		s.NextAgent = domain.AgentNone
		s.CurrentAgent = domain.AgentOrchestrator
		return next, "following " + string(next) + " hint"
	}
	if s.CurrentAgent == domain.AgentUserPreference && s.PendingValue != "" && !s.WaitingForInput {
		if val := strings.ToLower(strings.TrimSpace(s.PendingValue)); val != "" && !nullSentinels[val] {
			s.CurrentAgent = domain.AgentOrchestrator
			return domain.AgentUserPreference, "menu answer received"
		}
	}

	// 7. Completion-method shortcuts.
	if s.CompletionMethod == domain.MethodEmail && s.CurrentAgent != domain.AgentEmail {
		s.CurrentAgent = domain.AgentOrchestrator
		return domain.AgentEmail, "email completion method"
	}
	if s.CompletionMethod == domain.MethodManual {
		s.CurrentAgent = domain.AgentOrchestrator
		return domain.AgentNone, "manual completion: download is external"
	}

	// 8. Standard phase routing.
	s.CurrentAgent = domain.AgentOrchestrator
	switch s.Phase {
	case domain.PhaseCommonFields, domain.PhaseFormSpecific:
		// Validator -> mapper pipeline takes priority over conversation:
		// raw input never reaches form data without validation.
		if s.PendingField != "" {
			if s.InputValid {
				return domain.AgentSchemaMapper, "input validated, mapping"
			}
			return domain.AgentInputValidator, "pending input, validating"
		}
		if s.Phase == domain.PhaseCommonFields {
			if s.FieldStatus[domain.StatusKeyCommonComplete] == "true" {
				return domain.AgentUserPreference, "common fields complete"
			}
			return domain.AgentConversation, "common fields incomplete"
		}
		if s.FieldStatus[domain.StatusKeyFormsFilled] == "true" {
			if s.Status == domain.StatusWaitingCorrection {
				return domain.AgentNone, "correction outstanding"
			}
			return domain.AgentCompleteness, "forms filled, verifying"
		}
		return domain.AgentConversation, "continuing form questions"

	case domain.PhaseCommonCompleted:
		return domain.AgentUserPreference, "awaiting completion preference"

	case domain.PhaseVerification:
		if s.Status == domain.StatusWaitingCorrection {
			return domain.AgentNone, "correction outstanding"
		}
		return domain.AgentCompleteness, "verification phase"

	case domain.PhaseSubmission:
		return domain.AgentGuidewire, "ready for submission"
	}

	return domain.AgentNone, "no active phase"
}

// ingestPath recognizes "email:<path>" and "attachment:<path>" inputs and
// returns the trimmed path suffix.
func ingestPath(val string) (string, bool) {
	for _, prefix := range []string{"email:", "attachment:"} {
		if strings.HasPrefix(val, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(val, prefix)), true
		}
	}
	return "", false
}
