package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/gitworkflow/internal/config"
	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/service"
	"github.com/compozy/gitworkflow/internal/usecase"
	"go.uber.org/zap"
)

// GithubFactory builds the GitHub client for a repository once credentials
// are known.
type GithubFactory func(creds *domain.Credentials, owner, repo string) (repository.GithubRepository, error)

// PullRequestOrchestrator opens a pull request for the current branch.
type PullRequestOrchestrator struct {
	gitRepo       repository.GitExtendedRepository
	credsRepo     repository.CredentialsRepository
	githubFactory GithubFactory
	editor        service.EditorService
	presenter     usecase.Presenter
	prompter      usecase.Prompter
	cfg           *config.Config
	logger        *zap.Logger
}

// NewPullRequestOrchestrator creates a new pull request orchestrator.
func NewPullRequestOrchestrator(
	gitRepo repository.GitExtendedRepository,
	credsRepo repository.CredentialsRepository,
	githubFactory GithubFactory,
	editor service.EditorService,
	presenter usecase.Presenter,
	prompter usecase.Prompter,
	cfg *config.Config,
	logger *zap.Logger,
) *PullRequestOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &PullRequestOrchestrator{
		gitRepo:       gitRepo,
		credsRepo:     credsRepo,
		githubFactory: githubFactory,
		editor:        editor,
		presenter:     presenter,
		prompter:      prompter,
		cfg:           cfg,
		logger:        logger,
	}
}

// Execute runs the pull request workflow.
func (o *PullRequestOrchestrator) Execute(ctx context.Context) error {
	head, err := prepareBranch(ctx, o.gitRepo, o.presenter)
	if err != nil {
		return err
	}
	if head == o.cfg.BaseBranch {
		return fmt.Errorf("you are on %s; switch to the branch you want to merge", head)
	}
	if err := ValidateRefName("branch", head); err != nil {
		return fmt.Errorf("invalid branch name: %w", err)
	}
	creds, err := loadCredentials(ctx, o.credsRepo)
	if err != nil {
		return err
	}
	github, err := o.githubRepository(ctx, creds)
	if err != nil {
		return err
	}
	pr, err := o.collect(ctx, head)
	if err != nil {
		return err
	}
	o.presenter.Table([]string{"Field", "Value"}, [][]string{
		{"Title", pr.Title},
		{"Head", pr.Head},
		{"Base", pr.Base},
		{"Reviewers", strings.Join(pr.Reviewers, ", ")},
	})
	ok, err := o.prompter.PromptYesNo(ctx, "Create pull request?", true)
	if err != nil {
		return err
	}
	if !ok {
		o.presenter.Warn("Pull request not created")
		return nil
	}
	ref, err := o.publish(ctx, github, pr)
	if err != nil {
		return err
	}
	o.presenter.Success(fmt.Sprintf("Opened pull request #%d: %s", ref.Number, ref.URL))
	return nil
}

func (o *PullRequestOrchestrator) githubRepository(ctx context.Context, creds *domain.Credentials) (repository.GithubRepository, error) {
	remoteURL, err := o.gitRepo.RemoteURL(ctx)
	if err != nil && (o.cfg.GithubOwner == "" || o.cfg.GithubRepo == "") {
		return nil, fmt.Errorf("failed to get remote URL: %w", err)
	}
	owner, repo, err := o.cfg.GitHubRepository(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to determine GitHub repository: %w", err)
	}
	o.logger.Debug("using GitHub repository", zap.String("owner", owner), zap.String("repo", repo))
	return o.githubFactory(creds, owner, repo)
}

// collect asks for title, description and reviewers.
func (o *PullRequestOrchestrator) collect(ctx context.Context, head string) (*domain.PullRequest, error) {
	title, err := o.prompter.Prompt(ctx, "Title", head, false)
	if err != nil {
		return nil, err
	}
	pr := &domain.PullRequest{Title: strings.TrimSpace(title), Head: head, Base: o.cfg.BaseBranch}
	if pr.Title == "" {
		pr.Title = head
	}
	bodyUC := &usecase.PreparePRBodyUseCase{}
	seed, err := bodyUC.Execute(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare PR body: %w", err)
	}
	edited := (&usecase.EditTextUseCase{Editor: o.editor, Presenter: o.presenter}).Execute(ctx, seed)
	pr.Body = bodyUC.Clean(edited)
	input, err := o.prompter.Prompt(ctx, "Reviewers (comma separated)", "", false)
	if err != nil {
		return nil, err
	}
	selection := domain.ResolveReviewers(input, o.cfg.ReviewerAliases)
	for _, name := range selection.Blacklisted {
		o.presenter.Warn(fmt.Sprintf("Skipping reviewer %s", name))
	}
	pr.Reviewers = selection.Handles
	return pr, nil
}

// publish pushes the branch, opens the pull request and requests reviews.
func (o *PullRequestOrchestrator) publish(
	ctx context.Context,
	github repository.GithubRepository,
	pr *domain.PullRequest,
) (domain.PullRequestRef, error) {
	o.presenter.Info(fmt.Sprintf("Pushing %s to %s", pr.Head, o.cfg.Remote))
	if err := withRetry(ctx, func(ctx context.Context) error {
		return o.gitRepo.PushBranch(ctx, pr.Head)
	}); err != nil {
		return domain.PullRequestRef{}, fmt.Errorf("failed to push %s: %w", pr.Head, err)
	}
	var ref domain.PullRequestRef
	if err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		ref, err = github.CreatePullRequest(ctx, *pr)
		return err
	}); err != nil {
		return domain.PullRequestRef{}, err
	}
	if len(pr.Reviewers) == 0 {
		return ref, nil
	}
	if err := withRetry(ctx, func(ctx context.Context) error {
		return github.RequestReviewers(ctx, ref.Number, pr.Reviewers)
	}); err != nil {
		// the pull request already exists at this point
		o.presenter.Warn(fmt.Sprintf("Could not request reviewers: %v", err))
	}
	return ref, nil
}
