package editcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/editor"
	"github.com/papercomputeco/buildx/pkg/logger"
	"github.com/papercomputeco/buildx/pkg/notify"
	"github.com/papercomputeco/buildx/pkg/revision"
	"github.com/papercomputeco/buildx/pkg/workspace"
)

const editLongDesc string = `Edit a file of a project container in your $EDITOR.

The file is loaded into a local buffer and saved back to the container when
the editor exits. With --watch every write to the buffer is saved right away.
Go and JSON files are formatted on save.

Examples:
  buildx edit p1 src/App.tsx
  buildx edit --watch p1 main.py`

const editShortDesc string = "Edit a project file"

// syncDelay batches the burst of events editors emit for a single write.
const syncDelay = 300 * time.Millisecond

type editConfig struct {
	WorkspaceURL string `env:"BUILDX_WORKSPACE_URL" envDefault:"http://localhost:4000"`
	Editor       string `env:"EDITOR" envDefault:"vi"`
	Debug        bool   `env:"BUILDX_DEBUG" envDefault:"false"`
}

type editCommander struct {
	config   editConfig
	parseErr error
	watch    bool

	// runEditor opens the buffer for editing; replaced in tests.
	runEditor func(ctx context.Context, cmd *cobra.Command, path string) error
}

func NewEditCmd() *cobra.Command {
	cmder := &editCommander{}
	cmder.runEditor = cmder.openEditor
	if err := env.Parse(&cmder.config); err != nil {
		cmder.parseErr = fmt.Errorf("parse environment: %w", err)
	}

	cmd := &cobra.Command{
		Use:   "edit <container-id> <path>",
		Short: editShortDesc,
		Long:  editLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&cmder.config.WorkspaceURL, "workspace", cmder.config.WorkspaceURL, "Workspace service URL")
	cmd.Flags().StringVar(&cmder.config.Editor, "editor", cmder.config.Editor, "Editor command")
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Save on every write to the buffer")
	cmd.Flags().BoolVar(&cmder.config.Debug, "debug", cmder.config.Debug, "Enable debug logging")

	return cmd
}

func (c *editCommander) run(ctx context.Context, cmd *cobra.Command, containerID, filePath string) error {
	if c.parseErr != nil {
		return c.parseErr
	}

	log := logger.NewLogger(c.config.Debug)
	defer log.Sync()

	note := notify.New(cmd.ErrOrStderr())
	store := workspace.NewClient(c.config.WorkspaceURL, log)
	session := editor.NewSession(store, containerID, filePath, log,
		editor.WithFormatter(editor.DefaultFormatter),
		editor.WithRevisionLog(revision.NewMemoryLog()),
	)

	file := session.Load(ctx)

	buffer, err := os.CreateTemp("", "buildx-*-"+filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("could not create buffer: %w", err)
	}
	bufferPath := buffer.Name()
	defer os.Remove(bufferPath)

	_, err = io.WriteString(buffer, file.FileContent)
	buffer.Close()
	if err != nil {
		return fmt.Errorf("could not write buffer: %w", err)
	}

	note.Info("Editing %s (%s) in container %s", filePath, session.Language(), containerID)

	syncer := &bufferSyncer{
		session: session,
		path:    bufferPath,
		out:     cmd.OutOrStdout(),
		note:    note,
		logger:  log,
		last:    file.FileContent,
	}

	var stopWatching func()
	if c.watch {
		stopWatching, err = syncer.watch(ctx)
		if err != nil {
			return err
		}
	}

	editErr := c.runEditor(ctx, cmd, bufferPath)
	if stopWatching != nil {
		stopWatching()
	}
	if editErr != nil {
		return fmt.Errorf("editor exited: %w", editErr)
	}

	return syncer.sync(ctx)
}

func (c *editCommander) openEditor(ctx context.Context, cmd *cobra.Command, path string) error {
	editorCmd := exec.CommandContext(ctx, c.config.Editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = cmd.OutOrStdout()
	editorCmd.Stderr = cmd.ErrOrStderr()
	return editorCmd.Run()
}

// bufferSyncer pushes buffer contents into the session and saves them.
type bufferSyncer struct {
	session *editor.Session
	path    string
	out     io.Writer
	note    *notify.Notifier
	logger  *zap.Logger

	// last is the buffer content most recently saved through the session
	last string
}

func (s *bufferSyncer) sync(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("could not read buffer: %w", err)
	}
	content := string(data)
	if content == s.last && !s.session.Dirty() {
		return nil
	}

	s.session.Edit(content)
	diff := s.session.Diff()

	saved, err := s.session.Save(ctx)
	if err != nil {
		s.note.Error("Failed to save %s", s.path)
		return err
	}
	s.last = content
	if !saved {
		return nil
	}

	fmt.Fprint(s.out, diff)
	if head := s.session.Head(); head != nil {
		s.note.Success("Saved revision %s", head.Short())
	}
	return nil
}

// watch saves the buffer after each write until the returned stop function is called.
func (s *bufferSyncer) watch(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not watch buffer: %w", err)
	}
	// Editors often replace the file instead of writing it, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("could not watch buffer: %w", err)
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		s.watchLoop(ctx, watcher, done)
	}()

	stop := func() {
		close(done)
		watcher.Close()
		<-finished
	}
	return stop, nil
}

func (s *bufferSyncer) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done <-chan struct{}) {
	timer := time.NewTimer(syncDelay)
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(syncDelay)

		case <-timer.C:
			if err := s.sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("buffer sync failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))

		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
