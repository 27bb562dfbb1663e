package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/bookmarker/internal/server"
	"github.com/dmitrijs2005/bookmarker/internal/server/config"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInMemoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = "memory://"
	cfg.GinMode = "test"
	cfg.LogLevel = "error"

	app, err := server.NewApp(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv := newInMemoryServer(t)
	anon := New(srv.URL)

	acc, err := anon.SignUp(ctx, "flow@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "flow@example.com", acc.Email)

	_, err = anon.SignUp(ctx, "flow@example.com", "other")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, err = anon.SignIn(ctx, "flow@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = anon.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	tok, err := anon.SignIn(ctx, "flow@example.com", "s3cret")
	require.NoError(t, err)
	c := New(srv.URL, WithToken(tok))

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, me.ID)

	bm, err := c.CreateBookmark(ctx, shared.CreateBookmarkRequest{Title: "Go", Link: "https://go.dev"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, bm.UserID)

	title := "The Go site"
	edited, err := c.EditBookmark(ctx, bm.ID, shared.EditBookmarkRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "The Go site", edited.Title)
	assert.Equal(t, "https://go.dev", edited.Link)

	list, err := c.ListBookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, c.DeleteBookmark(ctx, bm.ID))

	_, err = c.GetBookmark(ctx, bm.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
