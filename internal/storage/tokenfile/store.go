package tokenfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the session token as a single file holding the raw token
// string. The parent directory is created on first save with owner-only
// access.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reports found=false for a missing or empty file; any other read
// failure is returned to the caller.
func (s *Store) Load(ctx context.Context) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("read session file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}

	return token, true, nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// Clear removes the session file. A file that is already gone is not an
// error.
func (s *Store) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}
