package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/usecase"
	"go.uber.org/zap"
)

// githubUserKey is the git setting holding the user's GitHub login.
const githubUserKey = "github.user"

// AccountFactory builds the client used to verify a token.
type AccountFactory func(creds *domain.Credentials) (repository.GithubAccountRepository, error)

// LoginOrchestrator stores GitHub credentials for the other workflows.
type LoginOrchestrator struct {
	configReader   repository.GitRepository
	credsRepo      repository.CredentialsRepository
	accountFactory AccountFactory
	presenter      usecase.Presenter
	prompter       usecase.Prompter
	logger         *zap.Logger
}

// NewLoginOrchestrator creates a new login orchestrator. configReader may be
// nil outside a repository; accountFactory may be nil to skip verification.
func NewLoginOrchestrator(
	configReader repository.GitRepository,
	credsRepo repository.CredentialsRepository,
	accountFactory AccountFactory,
	presenter usecase.Presenter,
	prompter usecase.Prompter,
	logger *zap.Logger,
) *LoginOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginOrchestrator{
		configReader:   configReader,
		credsRepo:      credsRepo,
		accountFactory: accountFactory,
		presenter:      presenter,
		prompter:       prompter,
		logger:         logger,
	}
}

// Execute runs the login workflow.
func (o *LoginOrchestrator) Execute(ctx context.Context) error {
	user, err := o.prompter.Prompt(ctx, "GitHub user", o.defaultUser(ctx), false)
	if err != nil {
		return err
	}
	token, err := o.prompter.Prompt(ctx, "GitHub token", "", true)
	if err != nil {
		return err
	}
	creds := &domain.Credentials{User: strings.TrimSpace(user), Token: strings.TrimSpace(token)}
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if err := o.verify(ctx, creds); err != nil {
		return err
	}
	if err := o.credsRepo.Save(ctx, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	o.presenter.Success(fmt.Sprintf("Saved credentials to %s", o.credsRepo.Path()))
	return nil
}

func (o *LoginOrchestrator) defaultUser(ctx context.Context) string {
	if o.configReader == nil {
		return ""
	}
	user, err := o.configReader.ConfigGet(ctx, githubUserKey)
	if err != nil {
		o.logger.Debug("no default GitHub user", zap.Error(err))
		return ""
	}
	return user
}

// verify checks the token against the API and fills in the user when it was
// left blank.
func (o *LoginOrchestrator) verify(ctx context.Context, creds *domain.Credentials) error {
	if o.accountFactory == nil {
		return nil
	}
	account, err := o.accountFactory(creds)
	if err != nil {
		return err
	}
	var login string
	if err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		login, err = account.AuthenticatedUser(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("GitHub rejected the token: %w", err)
	}
	if creds.User == "" {
		creds.User = login
	} else if !strings.EqualFold(creds.User, login) {
		o.presenter.Warn(fmt.Sprintf("The token belongs to %s, not %s", login, creds.User))
	}
	return nil
}
