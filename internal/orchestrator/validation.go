package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// versionTagRegex matches release tags such as v1.2.3 or v1.2.3-rc.1
	versionTagRegex = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?(\+[a-zA-Z0-9.]+)?$`)
	// refNameRegex matches the characters accepted in pushed ref names
	refNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)
)

// ValidateVersionTag checks a release tag name.
func ValidateVersionTag(tag string) error {
	if err := ValidateRefName("tag", tag); err != nil {
		return err
	}
	if !versionTagRegex.MatchString(tag) {
		return fmt.Errorf("invalid version tag: %s (expected: v1.2.3)", tag)
	}
	return nil
}

// ValidateRefName checks a branch or tag name before it is pushed. kind is
// used in error messages.
func ValidateRefName(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s name cannot be empty", kind)
	case len(name) > 255:
		return fmt.Errorf("%s name too long: %d characters (max: 255)", kind, len(name))
	case strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/"):
		return fmt.Errorf("%s name cannot start or end with slash: %s", kind, name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%s name cannot start with a dash: %s", kind, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%s name cannot contain consecutive dots: %s", kind, name)
	case strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("%s name cannot end with .lock: %s", kind, name)
	case !refNameRegex.MatchString(name):
		return fmt.Errorf("invalid %s name format: %s", kind, name)
	}
	return nil
}
