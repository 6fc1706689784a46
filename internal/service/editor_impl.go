package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// editorService is the implementation of the EditorService interface.
type editorService struct {
	fs       afero.Fs
	tempDir  string
	resolver *EditorResolver
	runner   CommandRunner
	cleanup  CleanupRegistrar
	logger   *zap.Logger
	newID    func() string
}

// EditorOptions configures NewEditorService.
type EditorOptions struct {
	Fs       afero.Fs
	TempDir  string
	Resolver *EditorResolver
	Runner   CommandRunner
	Cleanup  CleanupRegistrar
	Logger   *zap.Logger
}

// NewEditorService creates an EditorService. Zero options fall back to the
// OS filesystem, the OS temp dir and a runner attached to the terminal.
func NewEditorService(opts EditorOptions) EditorService {
	s := &editorService{
		fs:       opts.Fs,
		tempDir:  opts.TempDir,
		resolver: opts.Resolver,
		runner:   opts.Runner,
		cleanup:  opts.Cleanup,
		logger:   opts.Logger,
		newID:    uuid.NewString,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.tempDir == "" {
		s.tempDir = os.TempDir()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.resolver == nil {
		s.resolver = NewEditorResolver(DefaultEditor, s.logger)
	}
	if s.runner == nil {
		s.runner = NewExecRunner()
	}
	return s
}

// Edit writes seed to a private temp file, opens it in the editor and returns
// what was saved. The file is removed on every path.
func (s *editorService) Edit(ctx context.Context, seed string) (string, error) {
	editor := s.resolver.Resolve(ctx)
	path := filepath.Join(s.tempDir, EditFilePrefix+s.newID()+EditFileSuffix)
	file, err := s.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, EditFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create edit file: %w", err)
	}
	remove := func() {
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove edit file", zap.String("path", path), zap.Error(err))
		}
	}
	defer remove()
	if s.cleanup != nil {
		release := s.cleanup.OnInterrupt(remove)
		defer release()
	}
	_, writeErr := file.WriteString(seed)
	closeErr := file.Close()
	if writeErr != nil {
		return "", fmt.Errorf("failed to write edit file: %w", writeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close edit file: %w", closeErr)
	}
	s.logger.Debug("opening editor", zap.String("editor", editor), zap.String("path", path))
	// "$@" lets editors configured with arguments ("code --wait") work.
	if err := s.runner.Run(ctx, "sh", "-c", editor+` "$@"`, "sh", path); err != nil {
		return "", &EditorError{Command: editor + " " + path, Err: err}
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read edit file: %w", err)
	}
	return string(data), nil
}

// execRunner runs commands with the process's standard streams.
type execRunner struct{}

// NewExecRunner creates a CommandRunner backed by os/exec.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
