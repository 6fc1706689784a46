package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
)

// CalculateVersionUseCase derives the next release from the latest tag.
type CalculateVersionUseCase struct {
	GitRepo repository.GitExtendedRepository
}

// Execute bumps the latest semver tag, or v0.0.0 when there is none.
func (uc *CalculateVersionUseCase) Execute(ctx context.Context, kind domain.BumpKind) (*domain.Release, error) {
	latestTag, err := uc.GitRepo.LatestTag(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest tag: %w", err)
	}
	previous := domain.InitialVersion()
	if latestTag != "" {
		previous, err = domain.NewVersion(latestTag)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest tag %s: %w", latestTag, err)
		}
	}
	next, err := previous.Bump(kind)
	if err != nil {
		return nil, err
	}
	return &domain.Release{
		Previous: previous,
		Version:  next,
		TagName:  next.String(),
	}, nil
}
