package workflow

import (
	"context"
	"strings"

	"github.com/inevo/formflow/pkg/domain"
)

// preferenceMenu is the fixed three-option prompt shown when the common
// fields are done or the user interrupts mid-flow.
const preferenceMenu = `We've finished the basic information. How would you like to proceed?
1. **Chat**: Continue filling details here.
2. **Manual**: Download the partially filled PDF to finish yourself.
3. **Email**: Have me email you the forms with a status report.

(Type 'Chat', 'Manual', or 'Email')`

// preferenceClarification re-prompts after an unrecognized answer.
const preferenceClarification = "I didn't catch that. Please type 'Chat', 'Manual', or 'Email'."

// runUserPreference is the crossroads: with no pending answer it shows the
// menu and suspends; with one it classifies the choice by substring or
// ordinal match and routes accordingly. A recognized choice also clears the
// interrupt sentinel so the menu cannot recapture subsequent inputs.
func (e *Engine) runUserPreference(ctx context.Context, s *domain.State) error {
	s.CurrentAgent = domain.AgentUserPreference

	if s.PendingValue == "" {
		s.AppendMessage("assistant", preferenceMenu)
		s.WaitingForInput = true
		s.NextAgent = domain.AgentNone
		return nil
	}

	ans := strings.ToLower(strings.TrimSpace(s.PendingValue))
	s.PendingValue = ""

	switch {
	case strings.Contains(ans, "chat") || strings.Contains(ans, "continue") || strings.Contains(ans, "1"):
		e.logger.Info("completion choice", "method", "chat")
		e.clearInterrupt(s)
		s.CompletionMethod = domain.MethodChat
		s.NextAgent = domain.AgentConversation
		s.Phase = domain.PhaseFormSpecific
		s.WaitingForInput = false

	case strings.Contains(ans, "manual") || strings.Contains(ans, "download") || strings.Contains(ans, "2"):
		e.logger.Info("completion choice", "method", "manual")
		e.clearInterrupt(s)
		s.CompletionMethod = domain.MethodManual
		s.NextAgent = domain.AgentFormPopulation
		s.WaitingForInput = false

	case strings.Contains(ans, "email") || strings.Contains(ans, "send") || strings.Contains(ans, "3"):
		e.logger.Info("completion choice", "method", "email")
		e.clearInterrupt(s)
		s.CompletionMethod = domain.MethodEmail
		// Populate first so there is something to send.
		s.NextAgent = domain.AgentFormPopulation
		s.WaitingForInput = false

	default:
		e.logger.Warn("unclear completion choice", "answer", ans)
		s.AppendMessage("assistant", preferenceClarification)
		s.WaitingForInput = true
		s.NextAgent = domain.AgentNone
	}
	return nil
}

// clearInterrupt drops the menu sentinel once a choice is made.
func (e *Engine) clearInterrupt(s *domain.State) {
	if s.PendingField == domain.GlobalInterrupt {
		s.PendingField = ""
	}
}
