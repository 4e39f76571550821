package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow"
	"github.com/inevo/formflow/internal/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine, err := formflow.New()
	require.NoError(t, err)
	srv := httptest.NewServer(NewHandler(engine, logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"session_id":"sess-1","user_id":"user_a"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body sessionResponse
	decode(t, resp, &body)
	assert.Equal(t, "sess-1", body.SessionID)
	assert.True(t, body.WaitingForInput)
	require.NotEmpty(t, body.History)
	assert.Equal(t, "assistant", body.History[0].Role)
	// The state view omits form data on create.
	assert.Nil(t, body.Forms)
}

func TestCreateSessionRequiresUserID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"session_id":"sess-1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSessionRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader("{broken"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostInputAdvancesSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"session_id":"sess-1","user_id":"user_a"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/sessions/sess-1/input", "application/json",
		strings.NewReader(`{"input":"Acme Logistics LLC"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body sessionResponse
	decode(t, resp, &body)
	assert.True(t, body.WaitingForInput)
	// The transcript now carries the user turn and the next question.
	roles := make([]string, 0, len(body.History))
	for _, m := range body.History {
		roles = append(roles, m.Role)
	}
	assert.Contains(t, roles, "user")
}

func TestPostInputValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/sessions/ghost/input", "application/json",
			strings.NewReader(`{"input":"hi"}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty input", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/sessions/ghost/input", "application/json",
			strings.NewReader(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSessionIncludesForms(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"session_id":"sess-1","user_id":"user_a"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/sessions/sess-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body sessionResponse
	decode(t, resp, &body)
	require.Contains(t, body.Forms, "form_125")

	resp, err = http.Get(srv.URL + "/sessions/ghost")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAndDeleteSessions(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []string{"sess-a", "sess-b"} {
		resp, err := http.Post(srv.URL+"/sessions", "application/json",
			strings.NewReader(`{"session_id":"`+id+`","user_id":"user_a"}`))
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	var listing map[string][]string
	decode(t, resp, &listing)
	assert.ElementsMatch(t, []string{"sess-a", "sess-b"}, listing["sessions"])

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/sess-a", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/sessions/sess-a")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
