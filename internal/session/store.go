package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the single opaque auth token across process restarts.
// An absent or unreadable file reads as anonymous, never as an error.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
	read  bool
}

// NewStore returns a file-backed store. Nothing is touched on disk
// until the first read or write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored token, or false when anonymous.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.read {
		s.load()
	}
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// Save writes the token to disk, then updates the in-memory copy.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token = strings.TrimSpace(token)
	if token == "" {
		return s.clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	s.token = token
	s.read = true
	return nil
}

// Clear removes the token. Clearing an already-empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear()
}

func (s *Store) clear() error {
	s.token = ""
	s.read = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) load() {
	s.read = true
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(data))
	// A multi-line file is not something we ever wrote; treat it as corrupt.
	if strings.ContainsAny(token, "\r\n") {
		return
	}
	s.token = token
}
