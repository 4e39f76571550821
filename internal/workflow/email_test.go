package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/adapters/email"
	"github.com/inevo/formflow/pkg/domain"
)

func TestEmailStatusReport(t *testing.T) {
	mailer := email.NewRecordingMailer()
	e := newTestEngine(WithMailer(mailer))
	s := newTestState(e)
	s.Forms["form_125"]["named_insured_full_name_a"] = "Acme LLC"

	require.NoError(t, e.runEmailProcessing(context.Background(), s))

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "user_test@example.com", sent[0].To)
	assert.Equal(t, "Your Application Status", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "%")
	assert.Equal(t, domain.StatusEmailed, s.Status)
	assert.Equal(t, domain.AgentNone, s.NextAgent)
}

func TestEmailCompleteAnalysisBinds(t *testing.T) {
	mailer := email.NewRecordingMailer()
	e := newTestEngine(WithMailer(mailer))
	s := newTestState(e)
	s.Status = domain.StatusAnalyzedComplete

	require.NoError(t, e.runEmailProcessing(context.Background(), s))

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Application Complete!", sent[0].Subject)
	assert.Equal(t, domain.StatusBound, s.Status)
	assert.Equal(t, domain.AgentNone, s.NextAgent)
}

func TestEmailIncompleteAnalysisRequestsCorrection(t *testing.T) {
	mailer := email.NewRecordingMailer()
	e := newTestEngine(WithMailer(mailer))
	s := newTestState(e)
	s.Status = domain.StatusAnalyzedIncomplete
	s.MissingFieldInfo = "prior_policy_prior_carrier_name_a (Name of the prior insurance carrier)"

	require.NoError(t, e.runEmailProcessing(context.Background(), s))

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Action Required - Missing Information", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "prior_policy_prior_carrier_name_a")
	assert.Equal(t, domain.StatusWaitingCorrection, s.Status)
	assert.Equal(t, domain.AgentConversation, s.NextAgent)
}

func TestEmailWithoutMailerStillAdvances(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)

	require.NoError(t, e.runEmailProcessing(context.Background(), s))
	assert.Equal(t, domain.StatusEmailed, s.Status)
}
