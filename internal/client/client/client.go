package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
)

const userAgent = "bookmarker-cli/1.0"

// Client talks to the bookmarker HTTP API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option customises a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New returns a client for the server at baseURL. A bare host:port is
// treated as plain http.
func New(baseURL string, opts ...Option) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the normalised server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*models.PublicAccount, error) {
	var out models.PublicAccount
	err := c.do(ctx, http.MethodPost, "/auth/signup", shared.AuthRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn returns the access token; it does not store it on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	var out shared.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", shared.AuthRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) Me(ctx context.Context) (*models.PublicAccount, error) {
	var out models.PublicAccount
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EditMe(ctx context.Context, req shared.EditUserRequest) (*models.PublicAccount, error) {
	var out models.PublicAccount
	if err := c.do(ctx, http.MethodPatch, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBookmarks(ctx context.Context) ([]*models.Bookmark, error) {
	out := []*models.Bookmark{}
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBookmark(ctx context.Context, id string) (*models.Bookmark, error) {
	var out models.Bookmark
	if err := c.do(ctx, http.MethodGet, bookmarkPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBookmark(ctx context.Context, req shared.CreateBookmarkRequest) (*models.Bookmark, error) {
	var out models.Bookmark
	if err := c.do(ctx, http.MethodPost, "/bookmarks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EditBookmark(ctx context.Context, id string, req shared.EditBookmarkRequest) (*models.Bookmark, error) {
	var out models.Bookmark
	if err := c.do(ctx, http.MethodPatch, bookmarkPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, bookmarkPath(id), nil, nil)
}

func bookmarkPath(id string) string {
	return "/bookmarks/" + url.PathEscape(id)
}

// do sends body as JSON and decodes a 2xx reply into out (when non-nil).
// Transport failures wrap ErrUnavailable; non-2xx replies become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return parseResponse(resp, out)
}

func parseResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er shared.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
