package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/papercomputeco/buildx/pkg/llm"
)

// ErrProjectNotFound is returned for a project with no local record.
var ErrProjectNotFound = errors.New("project not found")

// Project is the local record of a project's conversation. Messages holds the turns the
// user and the model exchanged so far, starting with the submitted prompt.
type Project struct {
	ID        string        `json:"id"`
	Framework llm.Framework `json:"framework"`
	Messages  []llm.Message `json:"messages"`
}

// Append adds turns to the conversation.
func (p *Project) Append(msgs ...llm.Message) {
	p.Messages = append(p.Messages, msgs...)
}

// ProjectStore keeps one JSON file per project in a directory.
type ProjectStore struct {
	dir string
}

// NewProjectStore creates a store rooted at dir.
func NewProjectStore(dir string) *ProjectStore {
	return &ProjectStore{dir: dir}
}

func (s *ProjectStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid project id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Save writes the project record, replacing any previous one.
func (s *ProjectStore) Save(p *Project) error {
	path, err := s.path(p.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode project: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write project %s: %w", p.ID, err)
	}
	return nil
}

// Load reads the record of project id.
func (s *ProjectStore) Load(id string) (*Project, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("could not read project %s: %w", id, err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("could not parse project %s: %w", id, err)
	}
	return &p, nil
}
