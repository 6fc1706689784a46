package repository

import "context"

// GitExtendedRepository extends GitRepository with the operations used by the
// pull request and release workflows.
type GitExtendedRepository interface {
	GitRepository
	// Branch operations
	PushBranch(ctx context.Context, name string) error
	// Tag operations
	LatestTag(ctx context.Context) (string, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, tag string) error
	// Remote operations
	RemoteURL(ctx context.Context) (string, error)
}
