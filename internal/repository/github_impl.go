package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/gitworkflow/internal/config"
	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/google/go-github/v74/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
	logger *zap.Logger
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(creds *domain.Credentials, owner, repo string, logger *zap.Logger) (GithubRepository, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials cannot be nil")
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid GitHub credentials: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	return newGithubRepository(newGithubClient(creds), owner, repo, logger), nil
}

// NewGithubAccountRepository creates a GithubAccountRepository used to verify
// a token before it is stored.
func NewGithubAccountRepository(creds *domain.Credentials, logger *zap.Logger) (GithubAccountRepository, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials cannot be nil")
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid GitHub credentials: %w", err)
	}
	return newGithubRepository(newGithubClient(creds), "", "", logger), nil
}

func newGithubClient(creds *domain.Credentials) *github.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(creds.Token)},
	)
	return github.NewClient(oauth2.NewClient(context.Background(), ts))
}

func newGithubRepository(client *github.Client, owner, repo string, logger *zap.Logger) *githubRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &githubRepository{
		client: client,
		owner:  owner,
		repo:   repo,
		logger: logger,
	}
}

// CreatePullRequest opens a pull request from pr.Head into pr.Base.
func (r *githubRepository) CreatePullRequest(ctx context.Context, pr domain.PullRequest) (domain.PullRequestRef, error) {
	r.logger.Debug("creating pull request",
		zap.String("owner", r.owner),
		zap.String("repo", r.repo),
		zap.String("head", pr.Head),
		zap.String("base", pr.Base),
	)
	created, _, err := r.client.PullRequests.Create(ctx, r.owner, r.repo, &github.NewPullRequest{
		Title: github.Ptr(pr.Title),
		Body:  github.Ptr(pr.Body),
		Head:  github.Ptr(pr.Head),
		Base:  github.Ptr(pr.Base),
	})
	if err != nil {
		return domain.PullRequestRef{}, fmt.Errorf("failed to create pull request: %w", err)
	}
	return domain.PullRequestRef{Number: created.GetNumber(), URL: created.GetHTMLURL()}, nil
}

// RequestReviewers asks the given users to review pull request number.
func (r *githubRepository) RequestReviewers(ctx context.Context, number int, reviewers []string) error {
	if len(reviewers) == 0 {
		return nil
	}
	r.logger.Debug("requesting reviewers", zap.Int("number", number), zap.Strings("reviewers", reviewers))
	_, _, err := r.client.PullRequests.RequestReviewers(ctx, r.owner, r.repo, number, github.ReviewersRequest{
		Reviewers: reviewers,
	})
	if err != nil {
		return fmt.Errorf("failed to request reviewers on PR #%d: %w", number, err)
	}
	return nil
}

// AuthenticatedUser returns the login owning the token.
func (r *githubRepository) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := r.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}
