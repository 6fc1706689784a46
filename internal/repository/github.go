package repository

import (
	"context"

	"github.com/compozy/gitworkflow/internal/domain"
)

// GithubRepository defines the GitHub API operations used to open a review.

type GithubRepository interface {
	CreatePullRequest(ctx context.Context, pr domain.PullRequest) (domain.PullRequestRef, error)
	RequestReviewers(ctx context.Context, number int, reviewers []string) error
}

// GithubAccountRepository answers questions about the authenticated account.
type GithubAccountRepository interface {
	AuthenticatedUser(ctx context.Context) (string, error)
}
