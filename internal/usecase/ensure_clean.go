package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/repository"
)

// EnsureCleanUseCase stops the workflow when the working tree has pending
// changes.
type EnsureCleanUseCase struct {
	GitRepo   repository.GitRepository
	Presenter Presenter
}

// Execute returns only when the working tree is clean.
func (uc *EnsureCleanUseCase) Execute(ctx context.Context) {
	uc.Presenter.Info("Checking for pending changes")
	dirty, err := uc.GitRepo.IsDirty(ctx)
	if err != nil {
		uc.Presenter.Fatal(fmt.Sprintf("Could not check for pending changes: %v", err))
		return
	}
	if !dirty {
		return
	}
	uc.Presenter.Warn("You have pending changes. Commit or stash them and try again.")
	status, err := uc.GitRepo.StatusShort(ctx)
	if err != nil {
		uc.Presenter.Fatal(fmt.Sprintf("Could not list pending changes: %v", err))
		return
	}
	uc.Presenter.Print(status)
	uc.Presenter.Exit(1)
}
