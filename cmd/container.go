package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/compozy/gitworkflow/internal/config"
	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/logger"
	"github.com/compozy/gitworkflow/internal/orchestrator"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/service"
	"github.com/compozy/gitworkflow/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config

	logger     *zap.Logger
	presenter  *ui.Presenter
	prompter   *ui.Prompter
	interrupts *ui.InterruptHandler
	fsRepo     repository.FileSystemRepository
	credsRepo  repository.CredentialsRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer(flags *pflag.FlagSet, interrupts *ui.InterruptHandler) (*container, error) {
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewFactory().CreateLogger(logger.Level(cfg.LogLevel), logger.Format(cfg.LogFormat))
	if err != nil {
		return nil, err
	}
	palette := ui.DefaultPalette()
	if cfg.NoColor {
		palette = ui.PlainPalette()
	}
	presenter := ui.NewPresenter(ui.WithPalette(palette))
	promptOpts := []ui.PrompterOption{ui.WithPromptLogger(log)}
	if secret, ok := ui.NewTerminalSecretReader(os.Stdin, interrupts); ok {
		promptOpts = append(promptOpts, ui.WithSecretReader(secret))
	}
	credsPath, err := repository.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	return &container{
		cfg:        cfg,
		logger:     log,
		presenter:  presenter,
		prompter:   ui.NewPrompter(os.Stdin, os.Stdout, promptOpts...),
		interrupts: interrupts,
		fsRepo:     fsRepo,
		credsRepo:  repository.NewCredentialsRepository(fsRepo, credsPath),
	}, nil
}

// gitRepository opens the working copy around the current directory.
func (c *container) gitRepository() (repository.GitExtendedRepository, error) {
	gitRepo, err := repository.NewGitExtendedRepository(repository.GitOptions{
		Path:          ".",
		Remote:        c.cfg.Remote,
		TokenProvider: c.token,
		Logger:        c.logger.Named("git"),
	})
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}
	return gitRepo, nil
}

// token feeds http(s) remotes with the stored GitHub token when there is one.
func (c *container) token() string {
	creds, err := c.credsRepo.Load(context.Background())
	if err != nil {
		c.logger.Debug("no token for git remotes", zap.Error(err))
		return ""
	}
	return creds.Token
}

func (c *container) editorService(cfg service.ConfigReader) service.EditorService {
	resolver := service.NewEditorResolver(
		service.DefaultEditor,
		c.logger.Named("editor"),
		service.DefaultEditorSources(cfg, os.LookupEnv)...,
	)
	return service.NewEditorService(service.EditorOptions{
		Fs:       c.fsRepo,
		Resolver: resolver,
		Cleanup:  c.interrupts,
		Logger:   c.logger.Named("editor"),
	})
}

func (c *container) githubFactory() orchestrator.GithubFactory {
	return func(creds *domain.Credentials, owner, repo string) (repository.GithubRepository, error) {
		return repository.NewGithubRepository(creds, owner, repo, c.logger.Named("github"))
	}
}

func (c *container) accountFactory() orchestrator.AccountFactory {
	return func(creds *domain.Credentials) (repository.GithubAccountRepository, error) {
		return repository.NewGithubAccountRepository(creds, c.logger.Named("github"))
	}
}
