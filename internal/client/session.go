// Package client provides an API client for the auth service together with an
// explicit session store holding the current token and user profile, replacing
// the ambient browser storage the web client used.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// User is the profile cached alongside the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	UID   string `json:"uid"`
}

// Session is the client-held token and user profile.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store persists a session between requests. Load returns (nil, nil) when no
// session is stored.
type Store interface {
	Save(session *Session) error
	Load() (*Session, error)
	Clear() error
}

// MemStore keeps the session in memory; it does not survive the process.
type MemStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save stores the session.
func (s *MemStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

// Load returns the stored session, or nil when absent.
func (s *MemStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

// Clear removes the stored session.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// FileStore persists the session as JSON on disk so it survives restarts.
// This backs the "remember me" choice at login.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed session store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the per-user session file location.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".aerosafe", "session.json"), nil
}

// Save writes the session to disk, creating parent directories as needed.
func (s *FileStore) Save(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load reads the session from disk, or nil when the file does not exist.
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
