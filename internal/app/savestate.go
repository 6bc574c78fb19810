package app

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gnes/internal/input"
	"gnes/internal/nes"
)

// StateStore persists console snapshots as gob files, one per slot.
type StateStore struct {
	dir string
}

// NewStateStore roots the store at the given directory.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

func (s *StateStore) path(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("slot%d.state", slot+1))
}

// Save snapshots the console into a slot.
func (s *StateStore) Save(slot int, console *nes.Console, pads *input.StandardController) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	file, err := os.Create(s.path(slot))
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewEncoder(file).Encode(console.Snapshot(pads))
}

// Load restores the console from a slot.
func (s *StateStore) Load(slot int, console *nes.Console, pads *input.StandardController) error {
	file, err := os.Open(s.path(slot))
	if err != nil {
		return err
	}
	defer file.Close()
	var snapshot nes.Snapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		return err
	}
	console.RestoreSnapshot(snapshot, pads)
	return nil
}
