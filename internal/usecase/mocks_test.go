package usecase

import (
	"bytes"
	"context"
	"strings"

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

// Mock for GitExtendedRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) IsDirty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockGitRepository) StatusShort(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) Checkout(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) RemoteUpdatePrune(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockGitRepository) RemotePullNoTags(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockGitRepository) ConfigGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) PushBranch(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockGitRepository) LatestTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	return m.Called(ctx, tag, msg).Error(0)
}

func (m *mockGitRepository) PushTag(ctx context.Context, tag string) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *mockGitRepository) RemoteURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock for EditorService
type mockEditorService struct {
	mock.Mock
}

func (m *mockEditorService) Edit(ctx context.Context, seed string) (string, error) {
	args := m.Called(ctx, seed)
	return args.String(0), args.Error(1)
}
