package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"
)

const (
	// DefaultRemote is the remote synchronized and pushed to.
	DefaultRemote = "origin"
	// tokenUsername is the basic auth user GitHub expects with a token password.
	tokenUsername = "x-access-token"
)

// ErrNonFastForward is returned when the local branch diverged from its remote.
var ErrNonFastForward = errors.New("local branch has diverged from remote, cannot fast-forward")

// TokenProvider returns the token used for http(s) remotes, or "".
type TokenProvider func() string

// GitOptions configures a go-git backed repository.
type GitOptions struct {
	Path          string
	Remote        string
	TokenProvider TokenProvider
	Logger        *zap.Logger
}

// gitRepository is the go-git implementation of GitExtendedRepository.

type gitRepository struct {
	repo          *git.Repository
	remote        string
	tokenProvider TokenProvider
	logger        *zap.Logger
}

// NewGitRepository opens the working copy containing opts.Path.
func NewGitRepository(opts GitOptions) (GitRepository, error) {
	return newGitRepository(opts)
}

// NewGitExtendedRepository opens the working copy containing opts.Path with
// the push and tag operations available.
func NewGitExtendedRepository(opts GitOptions) (GitExtendedRepository, error) {
	return newGitRepository(opts)
}

func newGitRepository(opts GitOptions) (*gitRepository, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return wrapRepository(repo, opts), nil
}

func wrapRepository(repo *git.Repository, opts GitOptions) *gitRepository {
	remote := opts.Remote
	if remote == "" {
		remote = DefaultRemote
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gitRepository{
		repo:          repo,
		remote:        remote,
		tokenProvider: opts.TokenProvider,
		logger:        logger,
	}
}

// IsDirty reports uncommitted changes to tracked files. Untracked files do
// not make the tree dirty.
func (r *gitRepository) IsDirty(_ context.Context) (bool, error) {
	status, err := r.status()
	if err != nil {
		return false, err
	}
	for _, fileStatus := range status {
		if fileStatus.Staging == git.Untracked && fileStatus.Worktree == git.Untracked {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// StatusShort renders the status like `git status -s`, sorted by path.
func (r *gitRepository) StatusShort(_ context.Context) (string, error) {
	status, err := r.status()
	if err != nil {
		return "", err
	}
	paths := make([]string, 0, len(status))
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	var b strings.Builder
	for _, path := range paths {
		fileStatus := status[path]
		fmt.Fprintf(&b, "%c%c %s\n", fileStatus.Staging, fileStatus.Worktree, path)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (r *gitRepository) status() (git.Status, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return status, nil
}

// Checkout switches to a local branch, or to a commit when name is a hash
// that is not also a branch name.
func (r *gitRepository) Checkout(_ context.Context, name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	opts := &git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}
	if _, refErr := r.repo.Reference(opts.Branch, false); refErr != nil && plumbing.IsHash(name) {
		opts = &git.CheckoutOptions{Hash: plumbing.NewHash(name)}
	}
	r.logger.Debug("checkout", zap.String("target", name))
	if err := w.Checkout(opts); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	return nil
}

// CurrentBranch returns the checked out branch, or the HEAD commit hash when
// HEAD is detached.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String(), nil
}

// RemoteUpdatePrune fetches every remote and removes stale remote-tracking
// branches, like `git remote update --prune`.
func (r *gitRepository) RemoteUpdatePrune(ctx context.Context) error {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, remote := range remotes {
		name := remote.Config().Name
		r.logger.Debug("fetching remote", zap.String("remote", name))
		err := remote.FetchContext(ctx, &git.FetchOptions{
			RemoteName: name,
			Prune:      true,
			Auth:       r.getAuth(remote.Config().URLs),
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to update remote %s: %w", name, err)
		}
	}
	return nil
}

// RemotePullNoTags fast-forwards the current branch from the configured
// remote without fetching tags.
func (r *gitRepository) RemotePullNoTags(ctx context.Context) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return fmt.Errorf("cannot pull with a detached HEAD")
	}
	branch := head.Name().Short()
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", r.remote, err)
	}
	refSpec := config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, r.remote, branch))
	r.logger.Debug("pulling", zap.String("remote", r.remote), zap.String("branch", branch))
	err = remote.FetchContext(ctx, &git.FetchOptions{
		RemoteName: r.remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Tags:       git.NoTags,
		Auth:       r.getAuth(remote.Config().URLs),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s from %s: %w", branch, r.remote, err)
	}
	return r.fastForward(branch)
}

// fastForward moves branch to its remote-tracking counterpart when that is a
// descendant of the local tip.
func (r *gitRepository) fastForward(branch string) error {
	local, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}
	upstream, err := r.repo.Reference(plumbing.NewRemoteReferenceName(r.remote, branch), true)
	if err != nil {
		return fmt.Errorf("failed to resolve %s/%s: %w", r.remote, branch, err)
	}
	if local.Hash() == upstream.Hash() {
		return nil
	}
	localCommit, err := r.repo.CommitObject(local.Hash())
	if err != nil {
		return fmt.Errorf("failed to get commit %s: %w", local.Hash(), err)
	}
	upstreamCommit, err := r.repo.CommitObject(upstream.Hash())
	if err != nil {
		return fmt.Errorf("failed to get commit %s: %w", upstream.Hash(), err)
	}
	ok, err := localCommit.IsAncestor(upstreamCommit)
	if err != nil {
		return fmt.Errorf("failed to compare %s with %s/%s: %w", branch, r.remote, branch, err)
	}
	if !ok {
		return ErrNonFastForward
	}
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.Reset(&git.ResetOptions{Commit: upstream.Hash(), Mode: git.MergeReset}); err != nil {
		return fmt.Errorf("failed to fast-forward %s: %w", branch, err)
	}
	return nil
}

// ConfigGet reads a dotted key such as core.editor or
// branch.master.remote from the repository and global git configuration.
// Missing keys yield "".
func (r *gitRepository) ConfigGet(_ context.Context, key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid config key %q", key)
	}
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}
	section, option := parts[0], parts[len(parts)-1]
	if !cfg.Raw.HasSection(section) {
		return "", nil
	}
	if len(parts) == 2 {
		return cfg.Raw.Section(section).Option(option), nil
	}
	subsection := strings.Join(parts[1:len(parts)-1], ".")
	s := cfg.Raw.Section(section)
	if !s.HasSubsection(subsection) {
		return "", nil
	}
	return s.Subsection(subsection).Option(option), nil
}

// PushBranch pushes a local branch to the remote under the same name.
func (r *gitRepository) PushBranch(ctx context.Context, name string) error {
	return r.push(ctx, config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name)))
}

// PushTag pushes a tag to the remote.
func (r *gitRepository) PushTag(ctx context.Context, tag string) error {
	return r.push(ctx, config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag)))
}

func (r *gitRepository) push(ctx context.Context, refSpec config.RefSpec) error {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", r.remote, err)
	}
	r.logger.Debug("pushing", zap.String("remote", r.remote), zap.String("refspec", refSpec.String()))
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       r.getAuth(remote.Config().URLs),
	})
	if errors.Is(err, git.ErrNonFastForwardUpdate) {
		return fmt.Errorf("failed to push %s: %w", refSpec, ErrNonFastForward)
	}
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s: %w", refSpec, err)
	}
	return nil
}

// LatestTag returns the highest semantic version tag, or "" when there is
// none. Tags that are not versions are ignored.
func (r *gitRepository) LatestTag(_ context.Context) (string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to get tags: %w", err)
	}
	var latestTag string
	var latest *domain.Version
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		version, err := domain.NewVersion(name)
		if err != nil {
			return nil
		}
		if latest == nil || version.Compare(latest) > 0 {
			latest = version
			latestTag = name
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}
	return latestTag, nil
}

// CreateTag creates an annotated tag on HEAD signed with the configured user.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	tagger, err := r.signature()
	if err != nil {
		return err
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger:  tagger,
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

func (r *gitRepository) signature() (*object.Signature, error) {
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, fmt.Errorf("user.name and user.email must be configured to create tags")
	}
	return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: time.Now()}, nil
}

// RemoteURL returns the first URL of the configured remote.
func (r *gitRepository) RemoteURL(_ context.Context) (string, error) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", r.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", r.remote)
	}
	return urls[0], nil
}

// getAuth returns token authentication for http(s) remotes. Other transports
// use go-git defaults such as the ssh agent.
func (r *gitRepository) getAuth(urls []string) transport.AuthMethod {
	if len(urls) == 0 || r.tokenProvider == nil {
		return nil
	}
	url := strings.ToLower(urls[0])
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return nil
	}
	token := strings.TrimSpace(r.tokenProvider())
	if token == "" {
		return nil
	}
	return &http.BasicAuth{
		Username: tokenUsername,
		Password: token,
	}
}
