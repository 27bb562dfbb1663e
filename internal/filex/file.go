// Package filex holds small filesystem helpers for files only the current
// user may read.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents with owner-only permissions and
// returns the cleaned path.
func EnsureDir(dir string) (string, error) {
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// WritePrivate writes data to path with mode 0600, creating the parent
// directory first. An existing file is truncated and its mode tightened.
func WritePrivate(path string, data []byte) error {
	if _, err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
