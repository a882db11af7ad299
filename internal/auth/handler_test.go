package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/treinalab/treinalab/internal/mockdb"
	"github.com/treinalab/treinalab/internal/session"
	"github.com/treinalab/treinalab/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_signIn(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, metrics.NewTestManager())

	req := httptest.NewRequest("POST", "/auth/signin",
		strings.NewReader(`{"email": "matheus.alves@teste.com"}`))
	rr := httptest.NewRecorder()
	handler.HandleSignIn(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp signInResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "u2", resp.Data.User.ID)
	assert.Equal(t, "p2", resp.Data.Session.Profile.ID)
	assert.True(t, strings.HasPrefix(resp.Data.Session.AccessToken, "mock_"))
}

func TestHandler_signInInvalidCredentials(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, metrics.NewTestManager())

	req := httptest.NewRequest("POST", "/auth/signin",
		strings.NewReader(`{"email": "ninguem@teste.com"}`))
	rr := httptest.NewRecorder()
	handler.HandleSignIn(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp signInResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Credenciais inválidas.", resp.Error.Message)
	assert.Nil(t, resp.Data)
}

func TestHandler_signInBadBody(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service, metrics.NewTestManager())

	req := httptest.NewRequest("POST", "/auth/signin", strings.NewReader("{oops"))
	rr := httptest.NewRecorder()
	handler.HandleSignIn(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_getSessionAndSignOut(t *testing.T) {
	service, sessions := newTestService()
	handler := NewHandler(service, metrics.NewTestManager())

	// no session yet
	req := httptest.NewRequest("GET", "/auth/session", nil)
	rr := httptest.NewRecorder()
	handler.HandleGetSession(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Session *session.Session `json:"session"`
		} `json:"data"`
		Error *mockdb.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Data.Session)

	_, signInErr := service.SignIn(req.Context(), "personal@teste.com")
	require.Nil(t, signInErr)
	require.NotNil(t, sessions.Current(req.Context()))

	rr = httptest.NewRecorder()
	handler.HandleGetSession(rr, httptest.NewRequest("GET", "/auth/session", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Session)
	assert.Equal(t, "p1", resp.Data.Session.Profile.ID)

	rr = httptest.NewRecorder()
	handler.HandleSignOut(rr, httptest.NewRequest("POST", "/auth/signout", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, sessions.Current(req.Context()))
}
