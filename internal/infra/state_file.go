package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"doorquote/internal/store"
)

// FileStateStore persists the catalog state as a JSON file. Alternative
// driver for installs without Redis (STATE_DRIVER=file).
type FileStateStore struct {
	path string
}

// NewFileStateStore uses the given path, or "<dir>/door-catalog-storage.json"
// when path names a directory.
func NewFileStateStore(path string) *FileStateStore {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, store.StorageKey+".json")
	}
	return &FileStateStore{path: path}
}

func (f *FileStateStore) Save(_ context.Context, st store.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state store: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	// Write-then-rename keeps the previous state intact if the write dies.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load returns (nil, nil) when the state file does not exist yet.
func (f *FileStateStore) Load(_ context.Context) (*store.State, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st store.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("state store: corrupt state at %s: %w", f.path, err)
	}
	return &st, nil
}

var _ store.Persistence = (*FileStateStore)(nil)
