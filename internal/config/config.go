package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the base name of the optional configuration file.
	ConfigName = ".git-workflow"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GIT_WORKFLOW"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"console": true, "structured": true}
)

type Config struct {
	LogLevel        string            `mapstructure:"log_level"`
	LogFormat       string            `mapstructure:"log_format"`
	NoColor         bool              `mapstructure:"no_color"`
	Remote          string            `mapstructure:"remote"`
	BaseBranch      string            `mapstructure:"base_branch"`
	GithubOwner     string            `mapstructure:"github_owner"`
	GithubRepo      string            `mapstructure:"github_repo"`
	ReviewerAliases map[string]string `mapstructure:"reviewer_aliases"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFormat:       "console",
		Remote:          "origin",
		BaseBranch:      "master",
		ReviewerAliases: map[string]string{},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if strings.TrimSpace(c.BaseBranch) == "" {
		return fmt.Errorf("base_branch cannot be empty")
	}
	// Owner and repo are optional, but only as a pair
	if c.GithubOwner != "" || c.GithubRepo != "" {
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// GitHubRepository returns the configured owner and repository, or parses
// them from remoteURL when they are not configured.
func (c *Config) GitHubRepository(remoteURL string) (string, string, error) {
	if c.GithubOwner != "" && c.GithubRepo != "" {
		return c.GithubOwner, c.GithubRepo, nil
	}
	owner, repo, err := ParseGitRemoteURL(remoteURL)
	if err != nil {
		return "", "", err
	}
	if err := ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return "", "", fmt.Errorf("remote %s does not name a GitHub repository: %w", remoteURL, err)
	}
	return owner, repo, nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// ParseGitRemoteURL extracts owner and repository from https, ssh, scp-like
// and local path remotes.
func ParseGitRemoteURL(remote string) (string, string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", "", fmt.Errorf("remote URL cannot be empty")
	}
	path := remote
	switch {
	case strings.Contains(remote, "://"):
		u, err := url.Parse(remote)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse remote URL %s: %w", remote, err)
		}
		path = u.Path
	case strings.Contains(remote, "@") && strings.Contains(remote, ":"):
		path = remote[strings.Index(remote, ":")+1:]
	}
	path = strings.TrimSuffix(strings.TrimRight(filepath.ToSlash(path), "/"), ".git")
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) < 2 {
		return "", "", fmt.Errorf("cannot determine owner and repository from %s", remote)
	}
	return segments[len(segments)-2], segments[len(segments)-1], nil
}

// LoadConfig reads .git-workflow.yaml from the working directory or the home
// directory, applies GIT_WORKFLOW_* overrides and the given flags.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	// Configure environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range []string{"github_owner", "github_repo"} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("no_color", defaults.NoColor)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("base_branch", defaults.BaseBranch)
	v.SetDefault("reviewer_aliases", defaults.ReviewerAliases)
	if flags != nil {
		for key, name := range map[string]string{"log_level": "log-level", "no_color": "no-color"} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
				}
			}
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// NO_COLOR disables color for any non-empty value
	if os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}
	if config.ReviewerAliases == nil {
		config.ReviewerAliases = map[string]string{}
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
