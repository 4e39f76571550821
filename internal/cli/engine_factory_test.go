package cli

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/adapters/memory"
)

func TestCreateEngineDefaults(t *testing.T) {
	engine, cleanup, err := CreateEngine(RunOptions{OutputDir: t.TempDir()}, createLogger(false))
	require.NoError(t, err)
	defer cleanup()

	state, err := engine.StartSession(context.Background(), "sess-1", "user_a")
	require.NoError(t, err)
	assert.True(t, state.WaitingForInput)
}

func TestCreateEnginePersistentStore(t *testing.T) {
	// Sessions parked on disk must survive a second engine instance.
	t.Chdir(t.TempDir())

	engine, cleanup, err := CreateEngine(RunOptions{Persist: true, OutputDir: t.TempDir()}, createLogger(false))
	require.NoError(t, err)
	defer cleanup()

	_, err = engine.StartSession(context.Background(), "sess-1", "user_a")
	require.NoError(t, err)

	second, cleanup2, err := CreateEngine(RunOptions{Persist: true, OutputDir: t.TempDir()}, createLogger(false))
	require.NoError(t, err)
	defer cleanup2()

	state, err := second.Session(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", state.SessionID)
}

func TestCreateEngineRejectsBadEncryptKey(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		t.Setenv("FORMFLOW_ENCRYPT_KEY", "%%%not-base64%%%")
		_, _, err := CreateEngine(RunOptions{Persist: true}, createLogger(false))
		assert.ErrorContains(t, err, "base64")
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Setenv("FORMFLOW_ENCRYPT_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
		_, _, err := CreateEngine(RunOptions{Persist: true}, createLogger(false))
		assert.ErrorContains(t, err, "32 bytes")
	})
}

func TestWrapStoreAppliesEncryption(t *testing.T) {
	key := make([]byte, 32)
	t.Setenv("FORMFLOW_ENCRYPT_KEY", base64.StdEncoding.EncodeToString(key))

	inner := memory.NewStore()
	wrapped, err := wrapStore(inner)
	require.NoError(t, err)
	assert.NotEqual(t, interface{}(inner), interface{}(wrapped))
}

func TestWrapStoreNoKeyPassthrough(t *testing.T) {
	t.Setenv("FORMFLOW_ENCRYPT_KEY", "")

	inner := memory.NewStore()
	wrapped, err := wrapStore(inner)
	require.NoError(t, err)
	assert.Equal(t, interface{}(inner), interface{}(wrapped))
}

func TestCreateDebugHooksCoverAllEvents(t *testing.T) {
	hooks := createDebugHooks(createLogger(true))
	assert.NotNil(t, hooks.OnAgentEnter)
	assert.NotNil(t, hooks.OnAgentLeave)
	assert.NotNil(t, hooks.OnRoute)
	assert.NotNil(t, hooks.OnFieldUpdate)
}
