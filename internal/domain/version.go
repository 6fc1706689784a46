package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BumpKind names the component of a version that a release increments.
type BumpKind string

const (
	BumpPatch BumpKind = "patch"
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
)

// ParseBumpKind accepts patch, minor or major in any case.
func ParseBumpKind(s string) (BumpKind, error) {
	switch kind := BumpKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case BumpPatch, BumpMinor, BumpMajor:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown version bump %q (expected patch, minor or major)", s)
	}
}

// Version wraps semver.Version for release tagging.
type Version struct {
	*semver.Version
}

// NewVersion creates a new Version from a string.
func NewVersion(s string) (*Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// InitialVersion is the base used when a repository has no release tags yet.
func InitialVersion() *Version {
	return &Version{semver.New(0, 0, 0, "", "")}
}

// Bump returns the next version for the given kind.
func (v *Version) Bump(kind BumpKind) (*Version, error) {
	var next semver.Version
	switch kind {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return nil, fmt.Errorf("unknown version bump %q", kind)
	}
	return &Version{&next}, nil
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// String returns the version string with v prefix.
func (v *Version) String() string {
	return "v" + v.Version.String()
}
