package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BudgetFileStore is the exchange sink for budget snapshot files: a
// configured directory where exported .json budgets land and from which they
// are opened again. It plays the role the save/open picker plays in an
// interactive client, so "file not there" is a non-error outcome (the
// cancellation analog), distinct from real I/O failure.
type BudgetFileStore struct {
	dir string
}

func NewBudgetFileStore(dir string) *BudgetFileStore {
	return &BudgetFileStore{dir: dir}
}

// TrySave writes the snapshot bytes under the suggested file name. Returns
// saved=false without error when the sink declines the write (directory not
// configured); any other failure is a real error.
func (b *BudgetFileStore) TrySave(fileName string, data []byte) (bool, error) {
	if b.dir == "" {
		return false, nil
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return false, fmt.Errorf("budget files: create dir: %w", err)
	}
	path := filepath.Join(b.dir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("budget files: write %s: %w", fileName, err)
	}
	return true, nil
}

// TryOpen reads a previously exported budget by file name. Returns ok=false
// without error when no such file exists.
func (b *BudgetFileStore) TryOpen(fileName string) ([]byte, bool, error) {
	if b.dir == "" {
		return nil, false, nil
	}
	path := filepath.Join(b.dir, filepath.Base(fileName))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("budget files: read %s: %w", fileName, err)
	}
	return data, true, nil
}

// List returns the .json budget files currently in the sink directory.
func (b *BudgetFileStore) List() ([]string, error) {
	if b.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(b.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
