package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/adapters/email"
	"github.com/inevo/formflow/pkg/adapters/guidewire"
	"github.com/inevo/formflow/pkg/domain"
)

// scriptedAnswer picks a plausible reply for whatever the engine just asked.
func scriptedAnswer(s *domain.State) string {
	field := bareFieldName(s.PendingField)
	switch {
	case s.PendingField == "" || s.PendingField == domain.GlobalInterrupt:
		return "chat"
	case strings.Contains(field, "email"):
		return "demo@example.com"
	case strings.Contains(field, "date"):
		return "2026-01-01"
	case strings.Contains(field, "vehicle_schedule_indicator"):
		return "yes"
	case strings.Contains(field, "indicator"):
		return "no"
	default:
		return "Acme Logistics LLC"
	}
}

// driveToMenu answers common-field questions until the preference menu shows.
func driveToMenu(t *testing.T, e *Engine, s *domain.State) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.RunTurn(ctx, s))
	for i := 0; i < 50; i++ {
		require.True(t, s.WaitingForInput)
		if s.PendingField == "" {
			// Menu is up.
			assert.Equal(t, preferenceMenu, s.History[len(s.History)-1].Content)
			return
		}
		e.Submit(s, scriptedAnswer(s))
		require.NoError(t, e.RunTurn(ctx, s))
	}
	t.Fatal("never reached the preference menu")
}

func TestWorkflowChatPathToQuote(t *testing.T) {
	e := newTestEngine(WithQuoteService(guidewire.New()))
	s := newTestState(e)
	ctx := context.Background()

	driveToMenu(t, e, s)
	assert.Equal(t, domain.PhaseCommonCompleted, s.Phase)

	// Pick chat and answer everything, including the vehicle trigger.
	for i := 0; i < 200 && !s.WorkflowComplete; i++ {
		e.Submit(s, scriptedAnswer(s))
		require.NoError(t, e.RunTurn(ctx, s))
	}

	require.True(t, s.WorkflowComplete)
	assert.Equal(t, domain.StatusQuoted, s.Status)
	assert.NotEmpty(t, s.QuoteID)
	assert.InDelta(t, guidewire.DefaultQuoteAmount, s.QuoteAmount, 0.001)

	// The trigger answer pulled in the vehicle form.
	assert.Contains(t, s.ActiveForms, "form_127")
	assert.Equal(t, "yes", s.Forms["form_125"]["policy_section_attached_vehicle_schedule_indicator_a"])

	// Everything active got filled along the way.
	miss := e.resolver.NextMissingField(s.Forms, s.ActiveForms)
	assert.Nil(t, miss)
}

func TestWorkflowManualPathSubmits(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	ctx := context.Background()

	driveToMenu(t, e, s)

	e.Submit(s, "2")
	require.NoError(t, e.RunTurn(ctx, s))

	assert.True(t, s.WorkflowComplete)
	assert.Equal(t, domain.StatusSubmitted, s.Status)
	assert.Equal(t, domain.PhaseVerification, s.Phase)
}

func TestWorkflowEmailChoiceStopsAfterPopulation(t *testing.T) {
	// Population marks the submission submitted, which is terminal, so the
	// email choice currently ends the turn before any mail goes out. The
	// orchestrator checks terminal status ahead of the completion method.
	mailer := email.NewRecordingMailer()
	e := newTestEngine(WithMailer(mailer))
	s := newTestState(e)
	ctx := context.Background()

	driveToMenu(t, e, s)

	e.Submit(s, "3")
	require.NoError(t, e.RunTurn(ctx, s))

	assert.True(t, s.WorkflowComplete)
	assert.Equal(t, domain.StatusSubmitted, s.Status)
	assert.Empty(t, mailer.Sent())
}

func TestWorkflowRejectsThenRecovers(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	ctx := context.Background()

	require.NoError(t, e.RunTurn(ctx, s))
	e.Submit(s, "Acme Logistics LLC") // name
	require.NoError(t, e.RunTurn(ctx, s))

	e.Submit(s, "not-an-email")
	require.NoError(t, e.RunTurn(ctx, s))
	require.Len(t, s.ValidationErrors, 1)
	assert.True(t, s.WaitingForInput)

	e.Submit(s, "demo@example.com")
	require.NoError(t, e.RunTurn(ctx, s))
	assert.Empty(t, s.ValidationErrors)
	assert.Equal(t, "demo@example.com",
		s.Forms["form_125"]["named_insured_contact_primary_email_address_a"])
}

func TestWorkflowHistoryIsAppendOnly(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	ctx := context.Background()

	require.NoError(t, e.RunTurn(ctx, s))
	firstLen := len(s.History)
	require.Positive(t, firstLen)
	first := s.History[0]

	e.Submit(s, "Acme Logistics LLC")
	require.NoError(t, e.RunTurn(ctx, s))
	assert.Greater(t, len(s.History), firstLen)
	assert.Equal(t, first, s.History[0])
}

func TestRunTurnStepBudget(t *testing.T) {
	e := newTestEngine(WithStepBudget(1))
	s := newTestState(e)
	// Submission phase needs one quoting step plus one halt check.
	s.Phase = domain.PhaseSubmission

	err := e.RunTurn(context.Background(), s)
	assert.ErrorIs(t, err, domain.ErrStepBudgetExceeded)
	// State survives the pause; the next turn can pick up where it stopped.
	assert.Equal(t, domain.StatusQuoted, s.Status)
}

func TestRunTurnHonorsContextCancellation(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.RunTurn(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
}
