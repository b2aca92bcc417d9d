package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

const (
	homeEnv       = "BUILDX_HOME"
	stateFileName = "state.toml"
)

// state is the on-disk layout of the CLI state file.
type state struct {
	Prompt string `toml:"prompt"`
}

// DraftStore keeps the draft prompt under the key "prompt" of a TOML state file.
// Every Save overwrites the previous draft.
type DraftStore struct {
	path string
	mu   sync.Mutex
}

// NewDraftStore creates a store backed by the file at path.
func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path}
}

// DefaultStatePath returns $BUILDX_HOME/state.toml, falling back to ~/.buildx/state.toml.
func DefaultStatePath() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return filepath.Join(dir, stateFileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, ".buildx", stateFileName), nil
}

// Path returns the state file location.
func (s *DraftStore) Path() string {
	return s.path
}

// Load returns the stored draft, or "" when none was saved yet.
func (s *DraftStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st state
	if _, err := toml.DecodeFile(s.path, &st); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("could not read state file %s: %w", s.path, err)
	}
	return st.Prompt, nil
}

// Save replaces the stored draft.
func (s *DraftStore) Save(prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(state{Prompt: prompt}); err != nil {
		return fmt.Errorf("could not encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("could not write state file %s: %w", s.path, err)
	}
	return nil
}
