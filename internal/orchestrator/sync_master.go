package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/usecase"
	"go.uber.org/zap"
)

// SyncMasterOrchestrator refreshes master and returns to the branch the user
// started on.
type SyncMasterOrchestrator struct {
	gitRepo   repository.GitRepository
	presenter usecase.Presenter
	prompter  usecase.Prompter
	logger    *zap.Logger
}

// NewSyncMasterOrchestrator creates a new sync-master orchestrator.
func NewSyncMasterOrchestrator(
	gitRepo repository.GitRepository,
	presenter usecase.Presenter,
	prompter usecase.Prompter,
	logger *zap.Logger,
) *SyncMasterOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncMasterOrchestrator{gitRepo: gitRepo, presenter: presenter, prompter: prompter, logger: logger}
}

// Execute runs the sync-master workflow.
func (o *SyncMasterOrchestrator) Execute(ctx context.Context) error {
	original, err := prepareBranch(ctx, o.gitRepo, o.presenter)
	if err != nil {
		return err
	}
	o.logger.Debug("syncing master", zap.String("original_branch", original))
	synced := (&usecase.SyncMasterUseCase{
		GitRepo:   o.gitRepo,
		Presenter: o.presenter,
		Prompter:  o.prompter,
	}).Execute(ctx, original)
	if synced {
		return returnToBranch(ctx, o.gitRepo, o.presenter, original)
	}
	return nil
}

// prepareBranch checks the tree is clean and returns the current branch.
func prepareBranch(ctx context.Context, gitRepo repository.GitRepository, presenter usecase.Presenter) (string, error) {
	(&usecase.EnsureCleanUseCase{GitRepo: gitRepo, Presenter: presenter}).Execute(ctx)
	branch, err := gitRepo.CurrentBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

func returnToBranch(ctx context.Context, gitRepo repository.GitRepository, presenter usecase.Presenter, branch string) error {
	if branch == "" || branch == usecase.MasterBranch {
		return nil
	}
	presenter.Info(fmt.Sprintf("Switching back to %s", branch))
	if err := gitRepo.Checkout(ctx, branch); err != nil {
		return fmt.Errorf("failed to switch back to %s: %w", branch, err)
	}
	return nil
}
