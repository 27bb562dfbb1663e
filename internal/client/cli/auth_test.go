package cli

import (
	"net/http"
	"os"
	"testing"

	"github.com/dmitrijs2005/bookmarker/internal/client/client"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_StoresToken(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodPost, "/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, shared.TokenResponse{AccessToken: "tok-1"})
	})
	r := newRunner(t, srv.URL)

	res := r.run("", "signin", "--email", "a@x.com", "--password", "pw")
	require.NoError(t, res.err)
	assert.Equal(t, "signed in as a@x.com\n", res.out)
	assert.Equal(t, map[string]any{"email": "a@x.com", "password": "pw"}, srv.body(http.MethodPost, "/auth/signin"))

	tok, err := client.NewTokenStore(r.tokenFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestSignIn_PromptsForMissingValues(t *testing.T) {
	stubPassword(t, "typed-pw")

	srv := newMockServer(t)
	srv.handle(http.MethodPost, "/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, shared.TokenResponse{AccessToken: "tok"})
	})
	r := newRunner(t, srv.URL)

	res := r.run("a@x.com\n", "signin")
	require.NoError(t, res.err)
	assert.Contains(t, res.prompt, "Email")
	assert.Contains(t, res.prompt, "Password: ")
	assert.NotContains(t, res.prompt, "typed-pw")
	assert.Equal(t, "typed-pw", srv.body(http.MethodPost, "/auth/signin")["password"])
}

func TestSignIn_WrongPassword(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodPost, "/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password")
	})
	r := newRunner(t, srv.URL)

	res := r.run("", "signin", "-e", "a@x.com", "-p", "bad")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, client.ErrUnauthorized)
	assert.Contains(t, res.err.Error(), "Invalid password")

	_, err := os.Stat(r.tokenFile)
	assert.True(t, os.IsNotExist(err))
}

func TestSignUp(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodPost, "/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusCreated, models.PublicAccount{ID: "u-1", Email: "a@x.com"})
	})
	r := newRunner(t, srv.URL)

	t.Run("confirmed prompt", func(t *testing.T) {
		stubPassword(t, "pw", "pw")
		res := r.run("", "signup", "--email", "a@x.com")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "u-1")
		assert.Contains(t, res.prompt, "Repeat password: ")
	})

	t.Run("mismatch never reaches the server", func(t *testing.T) {
		stubPassword(t, "pw", "other")
		res := r.run("", "signup", "--email", "b@x.com")
		assert.ErrorIs(t, res.err, errPasswordMismatch)
		assert.Equal(t, "a@x.com", srv.body(http.MethodPost, "/auth/signup")["email"])
	})

	t.Run("json output", func(t *testing.T) {
		res := r.run("", "--json", "signup", "--email", "a@x.com", "--password", "pw")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, `"id": "u-1"`)
	})
}

func TestSignUp_Duplicate(t *testing.T) {
	srv := newMockServer(t)
	srv.handle(http.MethodPost, "/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusForbidden, "CREDENTIALS_TAKEN", "Credentials already taken")
	})
	r := newRunner(t, srv.URL)

	res := r.run("", "signup", "--email", "a@x.com", "--password", "pw")
	var apiErr *client.APIError
	require.ErrorAs(t, res.err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestSignOut(t *testing.T) {
	r := newRunner(t, "http://unused")
	require.NoError(t, client.NewTokenStore(r.tokenFile).Save("tok"))

	res := r.run("", "signout")
	require.NoError(t, res.err)
	assert.Equal(t, "signed out\n", res.out)

	_, err := client.NewTokenStore(r.tokenFile).Load()
	assert.ErrorIs(t, err, client.ErrNoToken)
}
