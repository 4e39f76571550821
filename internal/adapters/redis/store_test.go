package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/schema"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func testState(sessionID string) *domain.State {
	reg := schema.Default()
	return domain.NewState(sessionID, "user_test", reg.RootForm(), reg.NewForms())
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := testState("sess-1")
	state.Forms["form_125"]["named_insured_full_name_a"] = "Acme LLC"
	state.Phase = domain.PhaseFormSpecific

	require.NoError(t, store.Save(ctx, "sess-1", state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme LLC", loaded.Forms["form_125"]["named_insured_full_name_a"])
	assert.Equal(t, domain.PhaseFormSpecific, loaded.Phase)
}

func TestLoadUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestKeyPrefix(t *testing.T) {
	store, mr := newTestStore(t, WithPrefix("custom:"))
	require.NoError(t, store.Save(context.Background(), "sess-1", testState("sess-1")))

	assert.True(t, mr.Exists("custom:sess-1"))
	assert.False(t, mr.Exists("formflow:session:sess-1"))
}

func TestTTLApplied(t *testing.T) {
	store, mr := newTestStore(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testState("sess-1")))
	assert.Equal(t, time.Minute, mr.TTL("formflow:session:sess-1"))

	// After expiry the value is gone and listing prunes the index entry.
	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteRemovesKeyAndIndex(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", testState("sess-1")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListWithoutTTL(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-a", testState("sess-a")))
	require.NoError(t, store.Save(ctx, "sess-b", testState("sess-b")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sess-a", "sess-b"}, ids)
}
