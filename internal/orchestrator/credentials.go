package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/compozy/gitworkflow/internal/repository"
)

// loadCredentials reads the auth file and turns a missing file into the
// remediation message shown to the user.
func loadCredentials(ctx context.Context, credsRepo repository.CredentialsRepository) (*domain.Credentials, error) {
	creds, err := credsRepo.Load(ctx)
	if errors.Is(err, repository.ErrCredentialsNotFound) {
		return nil, fmt.Errorf("GitHub credentials not found at %s; run `git-workflow login` first", credsRepo.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load GitHub credentials: %w", err)
	}
	return creds, nil
}
