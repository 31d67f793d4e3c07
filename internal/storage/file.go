// Package storage persists client state between runs. Two things survive a
// restart: the cart snapshot and the session token. Everything is plain JSON
// files under a state directory, written atomically so a crash mid-write
// never leaves a half-serialized file behind.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/storefront-client/internal/domain/cart"
)

const (
	cartFileName  = "cart.json"
	tokenFileName = "session.json"

	dirMode  = 0o700
	fileMode = 0o600
)

// CartStore persists cart snapshots between runs.
type CartStore interface {
	Save(snap cart.Snapshot) error
	Load() (cart.Snapshot, bool, error)
	Clear() error
}

var (
	_ CartStore = (*FileCartStore)(nil)
	_ CartStore = (*MemoryCartStore)(nil)
)

// FileCartStore persists cart snapshots as a JSON file.
type FileCartStore struct {
	path string
}

// NewFileCartStore creates a cart store rooted at dir, creating it if needed.
func NewFileCartStore(dir string) (*FileCartStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileCartStore{path: filepath.Join(dir, cartFileName)}, nil
}

// Save writes the snapshot, replacing any previous one.
func (s *FileCartStore) Save(snap cart.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return writeAtomic(s.path, data)
}

// Load reads the persisted snapshot. The second return is false when no
// snapshot has been saved yet.
func (s *FileCartStore) Load() (cart.Snapshot, bool, error) {
	var snap cart.Snapshot
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("read cart snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt file is treated as no file; starting empty beats
		// refusing to start.
		log.Printf("[Storage] discarding corrupt cart snapshot: %v", err)
		return cart.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Clear removes the persisted snapshot.
func (s *FileCartStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cart snapshot: %w", err)
	}
	return nil
}

// tokenEnvelope is the on-disk shape of the session file.
type tokenEnvelope struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileTokenStore persists the bearer token as a JSON file. Satisfies
// session.TokenStore.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store rooted at dir, creating it if needed.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileTokenStore{path: filepath.Join(dir, tokenFileName)}, nil
}

// Save writes the token, replacing any previous one.
func (s *FileTokenStore) Save(token string) error {
	data, err := json.MarshalIndent(tokenEnvelope{Token: token, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session token: %w", err)
	}
	return writeAtomic(s.path, data)
}

// Load reads the persisted token. The second return is false when no token
// has been saved.
func (s *FileTokenStore) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session token: %w", err)
	}
	var env tokenEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("[Storage] discarding corrupt session file: %v", err)
		return "", false, nil
	}
	if env.Token == "" {
		return "", false, nil
	}
	return env.Token, true, nil
}

// Clear removes the persisted token.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// writeAtomic writes data to path through a temp file and rename, so readers
// only ever see a complete file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
