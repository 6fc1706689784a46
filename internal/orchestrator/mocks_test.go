package orchestrator

import (
	"bytes"
	"context"
	"strings"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/ui"
	"github.com/stretchr/testify/mock"
)

type exitCode int

func panicExit(code int) { panic(exitCode(code)) }

type testUI struct {
	presenter *ui.Presenter
	prompter  *ui.Prompter
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func newTestUI(input string) *testUI {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return &testUI{
		presenter: ui.NewPresenter(ui.WithOutput(out, errOut), ui.WithPalette(ui.PlainPalette()), ui.WithExit(panicExit)),
		prompter:  ui.NewPrompter(strings.NewReader(input), out),
		out:       out,
		errOut:    errOut,
	}
}

// Mock for GitExtendedRepository - implements ALL methods from GitExtendedRepository interface
type mockGitExtendedRepository struct{ mock.Mock }

// GitRepository methods
func (m *mockGitExtendedRepository) IsDirty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitExtendedRepository) StatusShort(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitExtendedRepository) Checkout(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
func (m *mockGitExtendedRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitExtendedRepository) RemoteUpdatePrune(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockGitExtendedRepository) RemotePullNoTags(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockGitExtendedRepository) ConfigGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// GitExtendedRepository specific methods
func (m *mockGitExtendedRepository) PushBranch(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
func (m *mockGitExtendedRepository) LatestTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitExtendedRepository) CreateTag(ctx context.Context, tag, msg string) error {
	return m.Called(ctx, tag, msg).Error(0)
}
func (m *mockGitExtendedRepository) PushTag(ctx context.Context, tag string) error {
	return m.Called(ctx, tag).Error(0)
}
func (m *mockGitExtendedRepository) RemoteURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) CreatePullRequest(ctx context.Context, pr domain.PullRequest) (domain.PullRequestRef, error) {
	args := m.Called(ctx, pr)
	return args.Get(0).(domain.PullRequestRef), args.Error(1)
}
func (m *mockGithubRepository) RequestReviewers(ctx context.Context, number int, reviewers []string) error {
	return m.Called(ctx, number, reviewers).Error(0)
}

// Mock for GithubAccountRepository
type mockGithubAccountRepository struct{ mock.Mock }

func (m *mockGithubAccountRepository) AuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock for CredentialsRepository
type mockCredentialsRepository struct{ mock.Mock }

func (m *mockCredentialsRepository) Load(ctx context.Context) (*domain.Credentials, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credentials), args.Error(1)
}
func (m *mockCredentialsRepository) Save(ctx context.Context, creds *domain.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}
func (m *mockCredentialsRepository) Path() string {
	return m.Called().String(0)
}

// Mock for EditorService
type mockEditorService struct{ mock.Mock }

func (m *mockEditorService) Edit(ctx context.Context, seed string) (string, error) {
	args := m.Called(ctx, seed)
	return args.String(0), args.Error(1)
}

// expectClean sets up a clean working tree on branch.
func expectClean(gitRepo *mockGitExtendedRepository, branch string) {
	gitRepo.On("IsDirty", mock.Anything).Return(false, nil).Once()
	gitRepo.On("CurrentBranch", mock.Anything).Return(branch, nil).Once()
}

// expectSync sets up a successful master refresh.
func expectSync(gitRepo *mockGitExtendedRepository) {
	gitRepo.On("Checkout", mock.Anything, "master").Return(nil).Once()
	gitRepo.On("RemoteUpdatePrune", mock.Anything).Return(nil).Once()
	gitRepo.On("RemotePullNoTags", mock.Anything).Return(nil).Once()
}

func errCancelled() error { return ui.ErrCancelledInput }
