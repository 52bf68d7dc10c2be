package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"authgate/internal/api"
	"authgate/internal/api/handler"
	"authgate/internal/app/service"
	"authgate/internal/common"
	"authgate/internal/common/security"
	"authgate/internal/domain/model"
	"authgate/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identitySecret = []byte("identity-test-secret")

type identityFixture struct {
	server *httptest.Server
	users  *service.UserService
	issuer *security.TokenIssuer
}

// newIdentityFixture builds the identity service against an in-memory user
// store. Health endpoints need a real database and are not mounted here.
func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	users := service.NewUserService(repository.NewMemoryUserRepository())
	issuer := security.NewTokenIssuer(identitySecret, 30*time.Minute)
	verifier := security.NewLocalVerifier(identitySecret)

	authHandler := handler.NewAuthHandler(users, issuer, verifier)
	userHandler := handler.NewUserHandler(users, verifier)

	router := api.NewIdentityRouter(authHandler, userHandler, handler.NewHealthHandler(nil))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &identityFixture{server: server, users: users, issuer: issuer}
}

func (f *identityFixture) postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *identityFixture) getWithToken(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, r io.Reader, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(out))
}

func registerPayload() map[string]string {
	return map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "Abcdef1!",
	}
}

func TestRegisterLoginVerifyFlow(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)

	// Register.
	resp := f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.User
	decodeJSON(t, resp.Body, &created)
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.IsActive)

	// Duplicate username.
	resp = f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody common.ErrorResponse
	decodeJSON(t, resp.Body, &errBody)
	assert.Equal(t, "Username already registered", errBody.Detail)

	// Login.
	resp = f.postJSON(t, "/auth/login", map[string]string{"username": "alice", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token handler.TokenResponse
	decodeJSON(t, resp.Body, &token)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)
	assert.Len(t, strings.Split(token.AccessToken, "."), 3)
	require.NotNil(t, token.User)
	assert.Equal(t, created.ID, token.User.ID)

	// Verify with the issued token.
	resp = f.getWithToken(t, "/auth/verify", token.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verified model.User
	decodeJSON(t, resp.Body, &verified)
	assert.Equal(t, "alice", verified.Username)
	assert.Equal(t, "alice@x.com", verified.Email)

	// Verify with the token truncated by one character.
	resp = f.getWithToken(t, "/auth/verify", token.AccessToken[:len(token.AccessToken)-1])
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)
	payload := registerPayload()
	payload["password"] = "weakpass"

	resp := f.postJSON(t, "/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody common.ErrorResponse
	decodeJSON(t, resp.Body, &errBody)
	assert.Contains(t, errBody.Detail, "Password must be at least 8 characters")
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)
	f.postJSON(t, "/auth/register", registerPayload())

	for name, payload := range map[string]map[string]string{
		"wrong password": {"username": "alice", "password": "Wrong-pass1!"},
		"unknown user":   {"username": "nobody", "password": "Abcdef1!"},
	} {
		resp := f.postJSON(t, "/auth/login", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), name)

		var errBody common.ErrorResponse
		decodeJSON(t, resp.Body, &errBody)
		assert.Equal(t, "Incorrect username or password", errBody.Detail, name)
	}
}

func TestLogin_WithEmailIdentifier(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)
	f.postJSON(t, "/auth/register", registerPayload())

	resp := f.postJSON(t, "/auth/login", map[string]string{"username": "alice@x.com", "password": "Abcdef1!"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVerify_UserGoneAndInactive(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)
	resp := f.postJSON(t, "/auth/register", registerPayload())
	var created model.User
	decodeJSON(t, resp.Body, &created)

	// Token encodes a user id the directory has no record of.
	ghostToken, err := f.issuer.Issue("ghost", created.ID+100)
	require.NoError(t, err)
	resp = f.getWithToken(t, "/auth/verify", ghostToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody common.ErrorResponse
	decodeJSON(t, resp.Body, &errBody)
	assert.Equal(t, "User not found", errBody.Detail)

	// Deactivated account: token still cryptographically valid.
	token, err := f.issuer.Issue(created.Username, created.ID)
	require.NoError(t, err)
	_, err = f.users.SetActive(context.Background(), created.ID, false)
	require.NoError(t, err)

	resp = f.getWithToken(t, "/auth/verify", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeJSON(t, resp.Body, &errBody)
	assert.Equal(t, "Inactive user", errBody.Detail)
}

func TestUsersMe(t *testing.T) {
	t.Parallel()

	f := newIdentityFixture(t)
	f.postJSON(t, "/auth/register", registerPayload())
	resp := f.postJSON(t, "/auth/login", map[string]string{"username": "alice", "password": "Abcdef1!"})
	var token handler.TokenResponse
	decodeJSON(t, resp.Body, &token)

	resp = f.getWithToken(t, "/users/me", token.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me model.User
	decodeJSON(t, resp.Body, &me)
	assert.Equal(t, "alice", me.Username)

	resp = f.getWithToken(t, "/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
