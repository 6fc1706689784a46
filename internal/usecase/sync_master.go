package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/compozy/gitworkflow/internal/ui"
)

// MasterBranch is the branch refreshed before branching off or tagging.
const MasterBranch = "master"

// SyncMasterUseCase brings the local master branch up to date with its
// remote.
type SyncMasterUseCase struct {
	GitRepo   repository.GitRepository
	Presenter Presenter
	Prompter  Prompter
}

// Execute checks out master and fast-forwards it. It reports whether master
// was updated. When the update fails the original branch is checked out
// again and the user decides whether to go on; in that case the repository
// stays on originalBranch and Execute returns false.
func (uc *SyncMasterUseCase) Execute(ctx context.Context, originalBranch string) bool {
	uc.Presenter.Info("Switching to master branch")
	if err := uc.GitRepo.Checkout(ctx, MasterBranch); err != nil {
		uc.Presenter.Fatal(fmt.Sprintf("Could not checkout master: %v", err))
		return false
	}
	uc.Presenter.Info("Pulling updates for master branch")
	if err := uc.pull(ctx); err != nil {
		uc.Presenter.Warn(fmt.Sprintf("Could not update master: %v", err))
		uc.rollback(ctx, originalBranch)
		if !confirm(ctx, uc.Presenter, uc.Prompter, "Continue anyway?", false) {
			uc.Presenter.Exit(1)
		}
		return false
	}
	uc.Presenter.Success("master is up to date")
	return true
}

func (uc *SyncMasterUseCase) pull(ctx context.Context) error {
	if err := uc.GitRepo.RemoteUpdatePrune(ctx); err != nil {
		return err
	}
	return uc.GitRepo.RemotePullNoTags(ctx)
}

func (uc *SyncMasterUseCase) rollback(ctx context.Context, originalBranch string) {
	if originalBranch == "" || originalBranch == MasterBranch {
		return
	}
	if err := uc.GitRepo.Checkout(ctx, originalBranch); err != nil {
		uc.Presenter.Error(fmt.Sprintf("Could not switch back to %s: %v", originalBranch, err))
	}
}

// confirm asks a yes/no question and terminates quietly when the user
// interrupts it.
func confirm(ctx context.Context, presenter Presenter, prompter Prompter, message string, def bool) bool {
	ok, err := prompter.PromptYesNo(ctx, message, def)
	if err != nil {
		handlePromptError(presenter, err)
		return false
	}
	return ok
}

func handlePromptError(presenter Presenter, err error) {
	if errors.Is(err, ui.ErrCancelledInput) {
		presenter.Interrupted()
		return
	}
	presenter.Fatal(fmt.Sprintf("Could not read answer: %v", err))
}
