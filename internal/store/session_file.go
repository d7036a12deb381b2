package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
)

// LocalSession is what the client keeps between runs: the principal token
// and, while a redirect sign-in is outstanding, the flow nonce.
type LocalSession struct {
	Token           string          `json:"token,omitempty"`
	PendingNonce    string          `json:"pending_nonce,omitempty"`
	PendingProvider models.Provider `json:"pending_provider,omitempty"`
	SavedAt         time.Time       `json:"saved_at"`
}

// HasPending reports whether a redirect sign-in is outstanding.
func (s LocalSession) HasPending() bool {
	return s.PendingNonce != ""
}

// fileSessionStore implements [SessionStore] as a JSON file readable only by
// the current user.
type fileSessionStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileSessionStore(path string) SessionStore {
	return &fileSessionStore{path: path, now: utcNow}
}

func (f *fileSessionStore) Load() (LocalSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return LocalSession{}, ErrLocalSessionNotFound
	}
	if err != nil {
		return LocalSession{}, fmt.Errorf("error reading session file: %w", err)
	}

	var session LocalSession
	if err = json.Unmarshal(raw, &session); err != nil {
		return LocalSession{}, fmt.Errorf("error decoding session file: %w", err)
	}

	return session, nil
}

func (f *fileSessionStore) Save(session LocalSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.SavedAt = f.now()
	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("error creating session dir: %w", err)
		}
	}

	if err = os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (f *fileSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
