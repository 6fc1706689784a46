package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// EditorService collects freeform text through the user's editor.
type EditorService interface {
	Edit(ctx context.Context, seed string) (string, error)
}

// CommandRunner runs a foreground command attached to the terminal.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ConfigReader reads a dotted repository setting. A missing key yields "".
type ConfigReader interface {
	ConfigGet(ctx context.Context, key string) (string, error)
}

// CleanupRegistrar registers work to run if the process is interrupted.
type CleanupRegistrar interface {
	OnInterrupt(fn func()) func()
}

// EditorSource is one place an editor command may be configured.
type EditorSource struct {
	Name   string
	Lookup func(ctx context.Context) (string, error)
}

// EditorResolver picks the editor from the first source with a value.
type EditorResolver struct {
	sources  []EditorSource
	fallback string
	logger   *zap.Logger
}

// NewEditorResolver checks sources in order and falls back to fallback.
func NewEditorResolver(fallback string, logger *zap.Logger, sources ...EditorSource) *EditorResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorResolver{sources: sources, fallback: fallback, logger: logger}
}

// DefaultEditorSources returns the lookup order used by the CLI: repository
// core.editor, GIT_WORKFLOW_EDITOR, VISUAL, then EDITOR.
func DefaultEditorSources(cfg ConfigReader, lookupEnv func(string) (string, bool)) []EditorSource {
	env := func(name string) EditorSource {
		return EditorSource{
			Name: "$" + name,
			Lookup: func(context.Context) (string, error) {
				value, _ := lookupEnv(name)
				return value, nil
			},
		}
	}
	return []EditorSource{
		{
			Name: EditorConfigKey,
			Lookup: func(ctx context.Context) (string, error) {
				if cfg == nil {
					return "", nil
				}
				return cfg.ConfigGet(ctx, EditorConfigKey)
			},
		},
		env(EditorEnvVar),
		env("VISUAL"),
		env("EDITOR"),
	}
}

// Sources returns the configured lookup order.
func (r *EditorResolver) Sources() []EditorSource {
	return r.sources
}

// Resolve returns the editor command. A source that fails is skipped.
func (r *EditorResolver) Resolve(ctx context.Context) string {
	for _, source := range r.sources {
		value, err := source.Lookup(ctx)
		if err != nil {
			r.logger.Debug("editor source unavailable", zap.String("source", source.Name), zap.Error(err))
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			r.logger.Debug("resolved editor", zap.String("source", source.Name), zap.String("editor", value))
			return value
		}
	}
	r.logger.Debug("using fallback editor", zap.String("editor", r.fallback))
	return r.fallback
}

// EditorError reports an editor that exited unsuccessfully.
type EditorError struct {
	Command string
	Err     error
}

func (e *EditorError) Error() string {
	return fmt.Sprintf("editor command %q failed: %v", e.Command, e.Err)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}
