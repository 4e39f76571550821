package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/domain"
)

func TestPreferenceShowsMenuAndSuspends(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)

	require.NoError(t, e.runUserPreference(context.Background(), s))

	assert.True(t, s.WaitingForInput)
	require.NotEmpty(t, s.History)
	assert.Equal(t, preferenceMenu, s.History[len(s.History)-1].Content)
	assert.Equal(t, domain.AgentUserPreference, s.CurrentAgent)
}

func TestPreferenceClassification(t *testing.T) {
	tests := []struct {
		input  string
		method domain.CompletionMethod
		next   domain.AgentID
	}{
		{"chat", domain.MethodChat, domain.AgentConversation},
		{"Let's continue here", domain.MethodChat, domain.AgentConversation},
		{"1", domain.MethodChat, domain.AgentConversation},
		{"manual please", domain.MethodManual, domain.AgentFormPopulation},
		{"I'd rather download it", domain.MethodManual, domain.AgentFormPopulation},
		{"2", domain.MethodManual, domain.AgentFormPopulation},
		{"email", domain.MethodEmail, domain.AgentFormPopulation},
		{"send them over", domain.MethodEmail, domain.AgentFormPopulation},
		{"3", domain.MethodEmail, domain.AgentFormPopulation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := newTestEngine()
			s := newTestState(e)
			s.PendingValue = tt.input

			require.NoError(t, e.runUserPreference(context.Background(), s))

			assert.Equal(t, tt.method, s.CompletionMethod)
			assert.Equal(t, tt.next, s.NextAgent)
			assert.False(t, s.WaitingForInput)
			assert.Empty(t, s.PendingValue)
		})
	}
}

func TestPreferenceChatEntersFormSpecificPhase(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	s.Phase = domain.PhaseCommonCompleted
	s.PendingValue = "chat"

	require.NoError(t, e.runUserPreference(context.Background(), s))
	assert.Equal(t, domain.PhaseFormSpecific, s.Phase)
}

func TestPreferenceClearsInterruptSentinel(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	s.PendingField = domain.GlobalInterrupt
	s.PendingValue = "chat"

	require.NoError(t, e.runUserPreference(context.Background(), s))
	assert.Empty(t, s.PendingField)
}

func TestPreferenceReasksOnUnclearAnswer(t *testing.T) {
	e := newTestEngine()
	s := newTestState(e)
	s.PendingField = domain.GlobalInterrupt
	s.PendingValue = "maybe?"

	require.NoError(t, e.runUserPreference(context.Background(), s))

	assert.True(t, s.WaitingForInput)
	assert.Equal(t, preferenceClarification, s.History[len(s.History)-1].Content)
	// An unclear answer keeps the sentinel so the next input comes back here.
	assert.Equal(t, domain.GlobalInterrupt, s.PendingField)
	assert.Empty(t, s.CompletionMethod)
}
