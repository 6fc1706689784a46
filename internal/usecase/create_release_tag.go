package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
)

// CreateReleaseTagUseCase creates the annotated tag of a release.
type CreateReleaseTagUseCase struct {
	GitRepo repository.GitExtendedRepository
}

// Execute runs the use case.
func (uc *CreateReleaseTagUseCase) Execute(ctx context.Context, release *domain.Release) error {
	if release == nil || release.TagName == "" {
		return fmt.Errorf("release tag cannot be empty")
	}
	if err := uc.GitRepo.CreateTag(ctx, release.TagName, release.Message); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", release.TagName, err)
	}
	return nil
}
