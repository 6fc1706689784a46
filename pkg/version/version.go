package version

import (
	"fmt"
	"strings"
)

// Set at build time with -ldflags "-X github.com/compozy/gitworkflow/pkg/version.Version=..."
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	commit := strings.TrimSpace(CommitHash)
	if commit == "" || commit == "unknown" {
		return Version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}
