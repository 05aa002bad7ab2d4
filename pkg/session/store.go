package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annthusiaast/lexctl/pkg/sdk"
)

const sessionFile = "session.json"

// Snapshot is the durable copy of the session. It is a best-effort cache of
// the in-memory state: it may be stale relative to the backend's
// authoritative session and is reconciled at bootstrap.
type Snapshot struct {
	User          *sdk.User `json:"user,omitempty"`
	Token         string    `json:"token,omitempty"`
	PendingUserID string    `json:"pending_user_id,omitempty"`
	PendingEmail  string    `json:"pending_user_email,omitempty"`
}

// Store persists session snapshots across process restarts.
type Store interface {
	// Load returns the cached snapshot, or (nil, nil) when none exists.
	Load() (*Snapshot, error)
	// Save replaces the cached snapshot.
	Save(*Snapshot) error
	// Clear removes the cached snapshot. Clearing an empty store is not
	// an error.
	Clear() error
}

// FileStore implements Store using a JSON file under the lexctl config
// directory.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at ~/.lexctl.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".lexctl")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create .lexctl directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, sessionFile)}, nil
}

// NewFileStoreAt creates a FileStore over an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the session file. A missing file is not an error.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("corrupted session file: %w", err)
	}
	return &snap, nil
}

// Save writes the session file with owner-only permissions.
func (s *FileStore) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
