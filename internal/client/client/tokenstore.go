package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookmarker/internal/filex"
)

// TokenStore keeps the access token between CLI invocations in a single
// file readable only by its owner.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (s *TokenStore) Path() string {
	return s.path
}

// Save writes token, creating the parent directory if needed.
func (s *TokenStore) Save(token string) error {
	if err := filex.WritePrivate(s.path, []byte(token+"\n")); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the stored token or ErrNoToken.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear removes the token file. A missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
