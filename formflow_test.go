package formflow

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/adapters/memory"
	"github.com/inevo/formflow/pkg/schema"
)

func TestStartSessionAsksFirstQuestion(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	state, err := engine.StartSession(context.Background(), "sess-1", "user_a")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", state.SessionID)
	assert.True(t, state.WaitingForInput)
	assert.Equal(t, "form_125:named_insured_full_name_a", state.PendingField)
	require.NotEmpty(t, state.History)
	assert.Equal(t, "assistant", state.History[0].Role)
}

func TestStartSessionGeneratesID(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	state, err := engine.StartSession(context.Background(), "", "user_a")
	require.NoError(t, err)

	_, parseErr := uuid.Parse(state.SessionID)
	assert.NoError(t, parseErr)
}

func TestHandleInputPersistsAcrossLoads(t *testing.T) {
	store := memory.NewStore()
	engine, err := New(WithStore(store))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = engine.StartSession(ctx, "sess-1", "user_a")
	require.NoError(t, err)

	state, err := engine.HandleInput(ctx, "sess-1", "Acme Logistics LLC")
	require.NoError(t, err)
	assert.Equal(t, "Acme Logistics LLC", state.Forms["form_125"]["named_insured_full_name_a"])

	reloaded, err := engine.Session(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, state.Forms["form_125"], reloaded.Forms["form_125"])
	assert.Equal(t, len(state.History), len(reloaded.History))
}

func TestHandleInputUnknownSession(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	_, err = engine.HandleInput(context.Background(), "ghost", "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsAndEndSession(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = engine.StartSession(ctx, "sess-a", "u")
	require.NoError(t, err)
	_, err = engine.StartSession(ctx, "sess-b", "u")
	require.NoError(t, err)

	ids, err := engine.Sessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sess-a", "sess-b"}, ids)

	require.NoError(t, engine.EndSession(ctx, "sess-a"))
	_, err = engine.Session(ctx, "sess-a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProgressCountsFilledFields(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	state, err := engine.StartSession(ctx, "sess-1", "u")
	require.NoError(t, err)
	filled, total := engine.Progress(state)
	assert.Zero(t, filled)
	assert.Positive(t, total)

	state, err = engine.HandleInput(ctx, "sess-1", "Acme Logistics LLC")
	require.NoError(t, err)
	filled, _ = engine.Progress(state)
	// Shared fields propagate, so one answer can fill more than one slot.
	assert.GreaterOrEqual(t, filled, 1)
}

func TestWithRegistryReplacesSchema(t *testing.T) {
	reg, err := schema.Load([]byte(`
root_form: intake
common_fields: [company_name]
forms:
  intake:
    title: "Intake"
    sections: [company_name]
    fields:
      company_name: "Legal company name"
`))
	require.NoError(t, err)

	engine, err := New(WithRegistry(reg))
	require.NoError(t, err)

	state, err := engine.StartSession(context.Background(), "sess-1", "u")
	require.NoError(t, err)
	assert.Equal(t, "intake:company_name", state.PendingField)
}

func TestStepBudgetSurfacesPauseButSaves(t *testing.T) {
	engine, err := New(WithStepBudget(1))
	require.NoError(t, err)
	ctx := context.Background()

	// One step is enough to ask the first question, so starting succeeds.
	state, err := engine.StartSession(ctx, "sess-1", "u")
	require.NoError(t, err)
	assert.True(t, state.WaitingForInput)

	// Answering needs validator plus mapper plus the next question: the
	// budget trips, but the state is persisted and resumable.
	_, err = engine.HandleInput(ctx, "sess-1", "Acme Logistics LLC")
	assert.ErrorIs(t, err, ErrStepBudgetExceeded)

	saved, loadErr := engine.Session(ctx, "sess-1")
	require.NoError(t, loadErr)
	assert.NotNil(t, saved)
}

func TestRunnerScriptedSession(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	in := strings.NewReader("status\nAcme Logistics LLC\nquit\n")
	var out bytes.Buffer

	r := NewRunner()
	r.Input = in
	r.Output = &out
	r.SessionID = "sess-runner"

	require.NoError(t, r.Run(context.Background(), engine))

	text := out.String()
	assert.Contains(t, text, "named_insured_full_name_a")
	assert.Contains(t, text, "(no data collected yet)")
	assert.Contains(t, text, "Goodbye!")

	state, err := engine.Session(context.Background(), "sess-runner")
	require.NoError(t, err)
	assert.Equal(t, "Acme Logistics LLC", state.Forms["form_125"]["named_insured_full_name_a"])
}

func TestRunnerEOFExitsCleanly(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	r := NewRunner()
	r.Input = strings.NewReader("")
	r.Output = &bytes.Buffer{}

	assert.NoError(t, r.Run(context.Background(), engine))
}

func TestRunnerRendererApplied(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	var out bytes.Buffer
	r := NewRunner()
	r.Input = strings.NewReader("quit\n")
	r.Output = &out
	r.Renderer = func(s string) (string, error) { return "<<" + s + ">>", nil }

	require.NoError(t, r.Run(context.Background(), engine))
	assert.Contains(t, out.String(), "<<")
}
