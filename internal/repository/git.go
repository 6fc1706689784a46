package repository

import "context"

// GitRepository is the capability set the workflow core needs from a
// working copy.

type GitRepository interface {
	IsDirty(ctx context.Context) (bool, error)
	StatusShort(ctx context.Context) (string, error)
	Checkout(ctx context.Context, name string) error
	CurrentBranch(ctx context.Context) (string, error)
	RemoteUpdatePrune(ctx context.Context) error
	RemotePullNoTags(ctx context.Context) error
	ConfigGet(ctx context.Context, key string) (string, error)
}
