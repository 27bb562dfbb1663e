package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bookmarker/internal/shared"
)

// mockServer answers "METHOD /path" with a registered handler and records
// the decoded JSON body of every request.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	bodies   map[string]map[string]any
	auth     map[string]string
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{
		handlers: map[string]http.HandlerFunc{},
		bodies:   map[string]map[string]any{},
		auth:     map[string]string{},
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		m.mu.Lock()
		h, ok := m.handlers[key]
		m.auth[key] = r.Header.Get("Authorization")
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			var body map[string]any
			_ = json.Unmarshal(data, &body)
			m.bodies[key] = body
		}
		m.mu.Unlock()

		if !ok {
			errorResponse(w, http.StatusNotFound, "NOT_FOUND", "Cannot "+key)
			return
		}
		h(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) handle(method, path string, h http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" "+path] = h
}

func (m *mockServer) body(method, path string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bodies[method+" "+path]
}

func (m *mockServer) authHeader(method, path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.auth[method+" "+path]
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, shared.ErrorResponse{Code: code, Message: message})
}

// result is the captured output of one CLI invocation.
type result struct {
	out    string
	prompt string
	err    error
}

// runner runs the CLI against serverURL with a private token file.
type runner struct {
	serverURL string
	tokenFile string
}

func newRunner(t *testing.T, serverURL string) *runner {
	t.Helper()
	return &runner{
		serverURL: serverURL,
		tokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

func (r *runner) run(stdin string, args ...string) result {
	var out, prompt bytes.Buffer

	app := NewApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &prompt

	full := append([]string{"bookmarker", "--server", r.serverURL, "--token-file", r.tokenFile}, args...)
	err := app.Run(full)
	return result{out: out.String(), prompt: prompt.String(), err: err}
}
