// Package state tracks what the last indexing run saw, so incremental runs
// can reuse documents for unchanged files.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	StateFile      = "state.json"
	CurrentVersion = "1"
)

// FileState records one indexed file.
type FileState struct {
	Hash      string    `json:"hash"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State is the persisted per-run bookkeeping.
type State struct {
	Version   string               `json:"version"`
	UpdatedAt time.Time            `json:"updated_at"`
	Files     map[string]FileState `json:"files"`
	IndexHash string               `json:"index_hash,omitempty"`
}

func New() *State {
	return &State{
		Version: CurrentVersion,
		Files:   make(map[string]FileState),
	}
}

// Load reads state from dir, returning a fresh state when none exists.
func Load(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, StateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	return &s, nil
}

// Save writes state to dir.
func (s *State) Save(dir string) error {
	if s.Version == "" {
		s.Version = CurrentVersion
	}
	s.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, StateFile), data, 0644)
}

// SetFile records the content hash for a file.
func (s *State) SetFile(file, hash string) {
	s.Files[file] = FileState{Hash: hash, UpdatedAt: time.Now()}
}

// HasChanged reports whether the file is new or its hash differs.
func (s *State) HasChanged(file, currentHash string) bool {
	fs, ok := s.Files[file]
	if !ok {
		return true
	}
	return fs.Hash != currentHash
}

// DeletedFiles returns tracked files absent from the current set.
func (s *State) DeletedFiles(current map[string]bool) []string {
	var deleted []string
	for file := range s.Files {
		if !current[file] {
			deleted = append(deleted, file)
		}
	}
	return deleted
}
