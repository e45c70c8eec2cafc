// ABOUTME: Durable wizard session state backed by Badger
// ABOUTME: Persists step and answers under one key, restored on open
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/engrity/intake/models"
)

const (
	// storageKey mirrors the single persisted slot the wizard uses.
	storageKey = "wizard-storage"

	// stateVersion guards the persisted envelope. Unknown versions are
	// discarded and the wizard restarts; nothing before submission is
	// authoritative.
	stateVersion = 1
)

// State is the persisted wizard envelope.
type State struct {
	Version   int               `json:"version"`
	SessionID string            `json:"session_id"`
	Step      int               `json:"step"`
	Data      *models.AnswerSet `json:"data"`
}

// NewState returns a fresh session positioned at step 1.
func NewState() *State {
	return &State{
		Version:   stateVersion,
		SessionID: uuid.New().String(),
		Step:      1,
		Data:      models.NewAnswerSet(),
	}
}

// Store wraps a Badger database holding the session envelope.
type Store struct {
	db *badger.DB
}

// DefaultDir returns the XDG data directory for session state.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "intake", "session")
}

// Open opens (or creates) the session database at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load restores the persisted state, or returns a fresh one when nothing
// usable is stored (missing key, corrupt payload, version mismatch).
func (s *Store) Load() (*State, error) {
	var raw []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})

	if err == badger.ErrKeyNotFound {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return NewState(), nil
	}
	if state.Version != stateVersion || state.Data == nil || state.Step < 1 {
		return NewState(), nil
	}

	return &state, nil
}

// Save persists the state. Called on every mutation.
func (s *Store) Save(state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}

	return nil
}

// Clear removes the persisted state entirely.
func (s *Store) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(storageKey))
	})
	if err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}
