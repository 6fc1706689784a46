package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitworkflow/internal/domain"
)

// PrepareTagMessageUseCase builds the editor seed for an annotated release
// tag and turns the saved text into the tag message.
type PrepareTagMessageUseCase struct{}

// Execute renders the seed shown in the editor.
func (uc *PrepareTagMessageUseCase) Execute(_ context.Context, release *domain.Release) (string, error) {
	if release == nil || release.Version == nil {
		return "", fmt.Errorf("release version cannot be nil")
	}
	return renderSeed("tag-message", tagMessageTemplate, struct {
		Tag      string
		Previous string
	}{
		Tag:      release.TagName,
		Previous: release.Previous.String(),
	})
}

// Clean strips comment lines; an empty result becomes "Release <tag>".
func (uc *PrepareTagMessageUseCase) Clean(release *domain.Release, text string) string {
	if msg := stripCommentLines(text); msg != "" {
		return msg
	}
	return "Release " + release.TagName
}

const tagMessageTemplate = `Release {{.Tag}}

# Summarize the changes since {{.Previous}}.
# Lines starting with '#' are ignored.
`
