// Package session persists the bearer token between runs.
// The token lives under the "token" key of a small TOML file.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

type fileContents struct {
	Token string `toml:"token"`
}

// Store is a persisted single-key token store. Reads are served from memory.
type Store struct {
	path string

	mu    sync.RWMutex
	token string
}

// Open loads the session file at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	s := &Store{path: resolved}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var contents fileContents
	if err := toml.Unmarshal(bytes, &contents); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	s.token = strings.TrimSpace(contents.Token)
	return s, nil
}

// Token returns the current token and whether one is present.
func (s *Store) Token() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores token in memory and on disk.
func (s *Store) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(fileContents{Token: token}); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear forgets the token and removes the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Path returns the resolved session file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) write(contents fileContents) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	bytes, err := toml.Marshal(contents)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Static is a fixed token source, handy for scripts and tests.
type Static string

// Token implements the token source contract.
func (s Static) Token() (string, bool) {
	token := strings.TrimSpace(string(s))
	return token, token != ""
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
