package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStorage persists the auth token across sessions, the counterpart of
// the browser's local storage.
type TokenStorage interface {
	Get() string
	Set(token string) error
	Clear() error
}

// MemoryTokenStorage keeps the token in memory only.
type MemoryTokenStorage struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStorage) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStorage) Clear() error {
	return s.Set("")
}

// FileTokenStorage persists the token to a file with user-only permissions.
type FileTokenStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

func (s *FileTokenStorage) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *FileTokenStorage) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
