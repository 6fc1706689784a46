package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/compozy/gitworkflow/internal/config"
	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type prFixture struct {
	gitRepo   *mockGitExtendedRepository
	github    *mockGithubRepository
	credsRepo *mockCredentialsRepository
	editor    *mockEditorService
	ui        *testUI
	cfg       *config.Config
	owner     string
	repo      string
}

func newPRFixture(input string) *prFixture {
	cfg := config.DefaultConfig()
	cfg.ReviewerAliases = map[string]string{"bob": "bob-the-builder", "bot": ""}
	return &prFixture{
		gitRepo:   new(mockGitExtendedRepository),
		github:    new(mockGithubRepository),
		credsRepo: new(mockCredentialsRepository),
		editor:    new(mockEditorService),
		ui:        newTestUI(input),
		cfg:       cfg,
	}
}

func (f *prFixture) orchestrator() *PullRequestOrchestrator {
	factory := func(_ *domain.Credentials, owner, repo string) (repository.GithubRepository, error) {
		f.owner, f.repo = owner, repo
		return f.github, nil
	}
	return NewPullRequestOrchestrator(
		f.gitRepo, f.credsRepo, factory, f.editor, f.ui.presenter, f.ui.prompter, f.cfg, nil,
	)
}

func (f *prFixture) expectReady(branch string) {
	expectClean(f.gitRepo, branch)
	f.credsRepo.On("Load", mock.Anything).Return(&domain.Credentials{Token: "abc123"}, nil)
	f.gitRepo.On("RemoteURL", mock.Anything).Return("git@github.com:octo/widget.git", nil)
}

func TestPullRequestOrchestrator_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should push the branch and open the pull request", func(t *testing.T) {
		f := newPRFixture("Add login\nbob, @maia, bot\n\n")
		f.expectReady("feature/login")
		f.editor.On("Edit", mock.Anything, mock.MatchedBy(func(seed string) bool {
			return assert.Contains(t, seed, "feature/login to be merged into master")
		})).Return("# comment\nStores the token.\n", nil)
		f.gitRepo.On("PushBranch", mock.Anything, "feature/login").Return(nil).Once()
		expected := domain.PullRequest{
			Title:     "Add login",
			Body:      "Stores the token.",
			Head:      "feature/login",
			Base:      "master",
			Reviewers: []string{"bob-the-builder", "maia"},
		}
		f.github.On("CreatePullRequest", mock.Anything, expected).
			Return(domain.PullRequestRef{Number: 42, URL: "https://github.com/octo/widget/pull/42"}, nil).Once()
		f.github.On("RequestReviewers", mock.Anything, 42, []string{"bob-the-builder", "maia"}).Return(nil).Once()
		require.NoError(t, f.orchestrator().Execute(ctx))
		assert.Equal(t, "octo", f.owner)
		assert.Equal(t, "widget", f.repo)
		assert.Contains(t, f.ui.out.String(), "Title: [feature/login] ")
		assert.Contains(t, f.ui.out.String(), "> Skipping reviewer bot\n")
		assert.Contains(t, f.ui.out.String(), "Create pull request? [Y/n]: ")
		assert.Contains(t, f.ui.out.String(), "> Opened pull request #42: https://github.com/octo/widget/pull/42\n")
		f.gitRepo.AssertExpectations(t)
		f.github.AssertExpectations(t)
	})
	t.Run("Should default the title to the branch name", func(t *testing.T) {
		f := newPRFixture("\n\ny\n")
		f.expectReady("fix-typo")
		f.editor.On("Edit", mock.Anything, mock.Anything).Return("", nil)
		f.gitRepo.On("PushBranch", mock.Anything, "fix-typo").Return(nil)
		f.github.On("CreatePullRequest", mock.Anything, mock.MatchedBy(func(pr domain.PullRequest) bool {
			return pr.Title == "fix-typo" && pr.Body == "" && len(pr.Reviewers) == 0
		})).Return(domain.PullRequestRef{Number: 3}, nil)
		require.NoError(t, f.orchestrator().Execute(ctx))
		f.github.AssertNotCalled(t, "RequestReviewers", mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("Should refuse to open a pull request from the base branch", func(t *testing.T) {
		f := newPRFixture("")
		expectClean(f.gitRepo, "master")
		err := f.orchestrator().Execute(ctx)
		assert.ErrorContains(t, err, "you are on master")
		f.credsRepo.AssertNotCalled(t, "Load", mock.Anything)
	})
	t.Run("Should explain how to log in when credentials are missing", func(t *testing.T) {
		f := newPRFixture("")
		expectClean(f.gitRepo, "feature")
		f.credsRepo.On("Load", mock.Anything).
			Return(nil, fmt.Errorf("%w at /home/dev/.github-auth", repository.ErrCredentialsNotFound))
		f.credsRepo.On("Path").Return("/home/dev/.github-auth")
		err := f.orchestrator().Execute(ctx)
		assert.EqualError(t, err,
			"GitHub credentials not found at /home/dev/.github-auth; run `git-workflow login` first")
	})
	t.Run("Should do nothing when the user declines", func(t *testing.T) {
		f := newPRFixture("Title\n\nn\n")
		f.expectReady("feature")
		f.editor.On("Edit", mock.Anything, mock.Anything).Return("body", nil)
		require.NoError(t, f.orchestrator().Execute(ctx))
		assert.Contains(t, f.ui.out.String(), "> Pull request not created\n")
		f.gitRepo.AssertNotCalled(t, "PushBranch", mock.Anything, mock.Anything)
	})
	t.Run("Should not retry a rejected push", func(t *testing.T) {
		f := newPRFixture("Title\n\ny\n")
		f.expectReady("feature")
		f.editor.On("Edit", mock.Anything, mock.Anything).Return("body", nil)
		f.gitRepo.On("PushBranch", mock.Anything, "feature").
			Return(fmt.Errorf("failed to push: %w", repository.ErrNonFastForward))
		err := f.orchestrator().Execute(ctx)
		assert.ErrorIs(t, err, repository.ErrNonFastForward)
		f.gitRepo.AssertNumberOfCalls(t, "PushBranch", 1)
		f.github.AssertNotCalled(t, "CreatePullRequest", mock.Anything, mock.Anything)
	})
	t.Run("Should retry a transient push failure", func(t *testing.T) {
		f := newPRFixture("Title\n\ny\n")
		f.expectReady("feature")
		f.editor.On("Edit", mock.Anything, mock.Anything).Return("body", nil)
		f.gitRepo.On("PushBranch", mock.Anything, "feature").Return(errors.New("connection reset")).Once()
		f.gitRepo.On("PushBranch", mock.Anything, "feature").Return(nil).Once()
		f.github.On("CreatePullRequest", mock.Anything, mock.Anything).Return(domain.PullRequestRef{Number: 5}, nil)
		require.NoError(t, f.orchestrator().Execute(ctx))
		f.gitRepo.AssertNumberOfCalls(t, "PushBranch", 2)
	})
	t.Run("Should warn when reviewers cannot be requested", func(t *testing.T) {
		f := newPRFixture("Title\nmaia\ny\n")
		f.expectReady("feature")
		f.editor.On("Edit", mock.Anything, mock.Anything).Return("body", nil)
		f.gitRepo.On("PushBranch", mock.Anything, "feature").Return(nil)
		f.github.On("CreatePullRequest", mock.Anything, mock.Anything).Return(domain.PullRequestRef{Number: 9}, nil)
		f.github.On("RequestReviewers", mock.Anything, 9, []string{"maia"}).Return(context.Canceled)
		require.NoError(t, f.orchestrator().Execute(ctx))
		assert.Contains(t, f.ui.out.String(), "> Could not request reviewers")
	})
	t.Run("Should pass an interrupted prompt up to the caller", func(t *testing.T) {
		f := newPRFixture("")
		f.expectReady("feature")
		err := f.orchestrator().Execute(ctx)
		assert.ErrorIs(t, err, errCancelled())
	})
}
