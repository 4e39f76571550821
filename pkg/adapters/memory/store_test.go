package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/schema"
)

func testState(sessionID string) *domain.State {
	reg := schema.Default()
	return domain.NewState(sessionID, "user_test", reg.RootForm(), reg.NewForms())
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := testState("sess-1")
	state.Forms["form_125"]["named_insured_full_name_a"] = "Acme LLC"
	state.AppendMessage("assistant", "hello")

	require.NoError(t, store.Save(ctx, "sess-1", state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme LLC", loaded.Forms["form_125"]["named_insured_full_name_a"])
	assert.Len(t, loaded.History, 1)
}

func TestLoadUnknownSession(t *testing.T) {
	store := NewStore()
	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := testState("sess-1")
	require.NoError(t, store.Save(ctx, "sess-1", state))

	// Mutating the caller's copy after saving must not leak into the store.
	state.Forms["form_125"]["named_insured_full_name_a"] = "changed"
	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Forms["form_125"]["named_insured_full_name_a"])

	// And mutating a loaded copy must not affect later loads.
	loaded.Forms["form_125"]["named_insured_full_name_a"] = "changed again"
	fresh, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Forms["form_125"]["named_insured_full_name_a"])
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testState("sess-1")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestListIsSorted(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, id := range []string{"zulu", "alpha", "mike"} {
		require.NoError(t, store.Save(ctx, id, testState(id)))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, ids)
}
