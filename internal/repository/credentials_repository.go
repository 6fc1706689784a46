package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// CredentialsFileName is the per-user auth file under the home directory.
	CredentialsFileName = ".github-auth"
	// CredentialsFilePermissions keeps the token private to the user.
	CredentialsFilePermissions = 0600
	// LockTimeout defines the maximum time to wait for the credentials lock
	LockTimeout = 10 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrCredentialsNotFound is returned when the auth file does not exist.
var ErrCredentialsNotFound = errors.New("github credentials not found")

// CredentialsRepository loads and stores the GitHub auth file.
type CredentialsRepository interface {
	Load(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, creds *domain.Credentials) error
	Path() string
}

// fileCredentialsRepository keeps credentials in a JSON document.
type fileCredentialsRepository struct {
	fs   afero.Fs
	path string
}

// NewCredentialsRepository stores credentials at path on fs.
func NewCredentialsRepository(fs afero.Fs, path string) CredentialsRepository {
	return &fileCredentialsRepository{fs: fs, path: path}
}

// DefaultCredentialsPath returns ~/.github-auth.
func DefaultCredentialsPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, CredentialsFileName), nil
}

// Path returns the location of the auth file.
func (r *fileCredentialsRepository) Path() string {
	return r.path
}

// Load reads the auth file. A missing file yields ErrCredentialsNotFound.
func (r *fileCredentialsRepository) Load(_ context.Context) (*domain.Credentials, error) {
	exists, err := afero.Exists(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w at %s", ErrCredentialsNotFound, r.path)
	}
	v := viper.New()
	v.SetFs(r.fs)
	v.SetConfigFile(r.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", r.path, err)
	}
	var creds domain.Credentials
	if err := v.Unmarshal(&creds); err != nil {
		return nil, fmt.Errorf("failed to decode credentials file %s: %w", r.path, err)
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials in %s: %w", r.path, err)
	}
	return &creds, nil
}

// Save writes the auth file under an exclusive lock so that concurrent logins
// do not interleave.
func (r *fileCredentialsRepository) Save(ctx context.Context, creds *domain.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials cannot be nil")
	}
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	lock := flock.New(r.path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, LockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer func() {
		_ = lock.Unlock()
		_ = r.fs.Remove(r.path + ".lock")
	}()
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	tempFile := r.path + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, CredentialsFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp credentials file: %w", err)
	}
	if err := r.fs.Rename(tempFile, r.path); err != nil {
		_ = r.fs.Remove(tempFile)
		return fmt.Errorf("failed to rename credentials file: %w", err)
	}
	return r.fs.Chmod(r.path, CredentialsFilePermissions)
}
