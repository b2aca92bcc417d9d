// Package editor mediates between the workspace file store and an editing surface. A
// Session holds the live copy of a file that edits change and the last persisted copy;
// they differ exactly when there are unsaved changes.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/revision"
	"github.com/papercomputeco/buildx/pkg/workspace"
)

// ErrSaveFailed wraps every failed save.
var ErrSaveFailed = errors.New("save failed")

// FileStore fetches and persists container files.
type FileStore interface {
	FetchFile(ctx context.Context, containerID, filePath string) (workspace.FileContent, error)
	SaveFile(ctx context.Context, containerID, dir, name, content string) error
}

// Option configures a Session.
type Option func(*Session)

// WithFormatter sets the formatter run before each save.
func WithFormatter(f Formatter) Option {
	return func(s *Session) {
		s.formatter = f
	}
}

// WithRevisionLog sets the log that records saved revisions.
func WithRevisionLog(l revision.Log) Option {
	return func(s *Session) {
		s.revisions = l
	}
}

// Session is the editing state of one file in one container.
type Session struct {
	store       FileStore
	containerID string
	filePath    string
	language    string
	formatter   Formatter
	revisions   revision.Log
	logger      *zap.Logger

	// saveMu serializes saves so that a second save waits for the first one
	saveMu sync.Mutex

	mu        sync.Mutex
	live      workspace.FileContent
	persisted workspace.FileContent
}

// NewSession creates a session for filePath inside containerID. The file is not fetched
// until Load is called.
func NewSession(store FileStore, containerID, filePath string, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		store:       store,
		containerID: containerID,
		filePath:    filePath,
		language:    DetectLanguage(filePath),
		formatter:   DefaultFormatter,
		revisions:   revision.NewMemoryLog(),
		logger:      logger.With(zap.String("container", containerID), zap.String("file", filePath)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the file. A failed fetch is logged and leaves the session on an empty
// record with Success false; Load never fails.
func (s *Session) Load(ctx context.Context) workspace.FileContent {
	file, err := s.store.FetchFile(ctx, s.containerID, s.filePath)
	if err != nil {
		s.logger.Error("error fetching file content", zap.Error(err))
		file = workspace.EmptyFile
	}

	s.mu.Lock()
	s.live = file
	s.persisted = file
	s.mu.Unlock()

	s.logger.Debug("file loaded",
		zap.Bool("success", file.Success),
		zap.Int("bytes", len(file.FileContent)),
		zap.String("language", s.language),
	)
	return file
}

// Edit replaces the live content. The persisted copy is untouched.
func (s *Session) Edit(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.FileContent = content
}

// Dirty reports whether the live copy differs from the persisted one.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live != s.persisted
}

// Live returns the live copy.
func (s *Session) Live() workspace.FileContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Persisted returns the last persisted copy.
func (s *Session) Persisted() workspace.FileContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persisted
}

// Language returns the editor language detected from the file extension.
func (s *Session) Language() string {
	return s.language
}

// Diff renders the unsaved changes, or "" when there are none.
func (s *Session) Diff() string {
	s.mu.Lock()
	before, after := s.persisted.FileContent, s.live.FileContent
	s.mu.Unlock()
	return lineDiff(before, after)
}

// Save formats and persists the live copy when it differs from the persisted one and
// reports whether anything was written. On success the persisted copy becomes the saved
// snapshot. Edits made while the save is in flight stay unsaved.
func (s *Session) Save(ctx context.Context) (bool, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snapshot := s.live
	dirty := snapshot != s.persisted
	s.mu.Unlock()

	if !dirty {
		return false, nil
	}

	formatted, err := s.formatter.Format(ctx, s.language, snapshot.FileContent)
	if err != nil {
		s.logger.Error("error formatting file", zap.Error(err))
		return false, fmt.Errorf("%w: format: %w", ErrSaveFailed, err)
	}

	saved := snapshot
	saved.FileContent = formatted

	dir, name := saved.FileDir, saved.FileName
	if name == "" {
		dir, name = workspace.SplitPath(s.filePath)
	}

	if err := s.store.SaveFile(ctx, s.containerID, dir, name, formatted); err != nil {
		s.logger.Error("error saving file", zap.Error(err))
		return false, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.mu.Lock()
	if s.live == snapshot {
		s.live = saved
	}
	s.persisted = saved
	s.mu.Unlock()

	rev := revision.New(saved, s.revisions.Head())
	if _, err := s.revisions.Put(ctx, rev); err != nil {
		s.logger.Warn("failed to record revision", zap.Error(err))
	}

	s.logger.Info("file saved",
		zap.String("revision", rev.Short()),
		zap.Bool("reformatted", formatted != snapshot.FileContent),
	)
	return true, nil
}

// Head returns the latest saved revision, or nil before the first save.
func (s *Session) Head() *revision.Revision {
	return s.revisions.Head()
}

// Revisions returns the saved revisions of this session, newest first.
func (s *Session) Revisions(ctx context.Context) ([]*revision.Revision, error) {
	head := s.revisions.Head()
	if head == nil {
		return nil, nil
	}
	return s.revisions.Ancestry(ctx, head.Hash)
}
