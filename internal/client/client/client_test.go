package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// mockServer answers every request with handler and remembers the last one.
func mockServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recorded) {
	t.Helper()
	last := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.method = r.Method
		last.path = r.URL.Path
		last.auth = r.Header.Get("Authorization")
		last.body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &last.body)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, shared.ErrorResponse{Code: code, Message: message})
}

func TestNew_NormalisesBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3333", New("localhost:3333").BaseURL())
	assert.Equal(t, "https://bm.example.com", New("https://bm.example.com/").BaseURL())
}

func TestSignUp(t *testing.T) {
	srv, last := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusCreated, models.PublicAccount{ID: "u-1", Email: "a@x.com"})
	})

	acc, err := New(srv.URL).SignUp(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-1", acc.ID)
	assert.Equal(t, http.MethodPost, last.method)
	assert.Equal(t, "/auth/signup", last.path)
	assert.Equal(t, "a@x.com", last.body["email"])
	assert.Equal(t, "pw", last.body["password"])
	assert.Empty(t, last.auth)
}

func TestSignIn(t *testing.T) {
	srv, last := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, shared.TokenResponse{AccessToken: "tok"})
	})

	tok, err := New(srv.URL).SignIn(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, "/auth/signin", last.path)
}

func TestBearerTokenSent(t *testing.T) {
	srv, last := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, models.PublicAccount{ID: "u-1"})
	})

	_, err := New(srv.URL, WithToken("tok")).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", last.auth)
	assert.Equal(t, "/users/me", last.path)
}

func TestEditMe_SendsOnlySetFields(t *testing.T) {
	srv, last := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, models.PublicAccount{ID: "u-1", FirstName: "Ada"})
	})

	first := "Ada"
	acc, err := New(srv.URL, WithToken("t")).EditMe(context.Background(), shared.EditUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Ada", acc.FirstName)
	assert.Equal(t, http.MethodPatch, last.method)
	assert.Equal(t, map[string]any{"firstName": "Ada"}, last.body)
}

func TestBookmarkCalls(t *testing.T) {
	bm := models.Bookmark{ID: "b-1", Title: "Go", Link: "https://go.dev"}

	tests := []struct {
		name       string
		status     int
		reply      any
		call       func(c *Client) error
		wantMethod string
		wantPath   string
	}{
		{
			name: "list", status: http.StatusOK, reply: []models.Bookmark{bm},
			call: func(c *Client) error {
				got, err := c.ListBookmarks(context.Background())
				if err == nil && len(got) != 1 {
					return errors.New("expected one bookmark")
				}
				return err
			},
			wantMethod: http.MethodGet, wantPath: "/bookmarks",
		},
		{
			name: "get", status: http.StatusOK, reply: bm,
			call: func(c *Client) error {
				_, err := c.GetBookmark(context.Background(), "b-1")
				return err
			},
			wantMethod: http.MethodGet, wantPath: "/bookmarks/b-1",
		},
		{
			name: "create", status: http.StatusCreated, reply: bm,
			call: func(c *Client) error {
				_, err := c.CreateBookmark(context.Background(), shared.CreateBookmarkRequest{Title: "Go", Link: "https://go.dev"})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/bookmarks",
		},
		{
			name: "edit", status: http.StatusOK, reply: bm,
			call: func(c *Client) error {
				title := "Go"
				_, err := c.EditBookmark(context.Background(), "b-1", shared.EditBookmarkRequest{Title: &title})
				return err
			},
			wantMethod: http.MethodPatch, wantPath: "/bookmarks/b-1",
		},
		{
			name: "delete", status: http.StatusNoContent,
			call: func(c *Client) error {
				return c.DeleteBookmark(context.Background(), "b-1")
			},
			wantMethod: http.MethodDelete, wantPath: "/bookmarks/b-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, last := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.reply == nil {
					w.WriteHeader(tt.status)
					return
				}
				jsonResponse(w, tt.status, tt.reply)
			})

			require.NoError(t, tt.call(New(srv.URL, WithToken("t"))))
			assert.Equal(t, tt.wantMethod, last.method)
			assert.Equal(t, tt.wantPath, last.path)
			assert.Equal(t, "Bearer t", last.auth)
		})
	}
}

func TestListBookmarks_EmptyIsNotNil(t *testing.T) {
	srv, _ := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, []models.Bookmark{})
	})

	got, err := New(srv.URL).ListBookmarks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAPIError(t *testing.T) {
	t.Run("401 matches ErrUnauthorized", func(t *testing.T) {
		srv, _ := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
			errorResponse(w, http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password")
		})

		_, err := New(srv.URL).SignIn(context.Background(), "a@x.com", "bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "INVALID_PASSWORD", apiErr.Code)
		assert.Equal(t, "[INVALID_PASSWORD] Invalid password", err.Error())
	})

	t.Run("403 does not match ErrUnauthorized", func(t *testing.T) {
		srv, _ := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
			errorResponse(w, http.StatusForbidden, "CREDENTIALS_TAKEN", "Credentials already taken")
		})

		_, err := New(srv.URL).SignUp(context.Background(), "a@x.com", "pw")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("body without JSON", func(t *testing.T) {
		srv, _ := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		err := New(srv.URL).DeleteBookmark(context.Background(), "b-1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "request failed with status 502", err.Error())
	})
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBadJSONReply(t *testing.T) {
	srv, _ := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := New(srv.URL).Me(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}
