package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/compozy/gitworkflow/internal/domain"
)

// PreparePRBodyUseCase builds the editor seed for a pull request description
// and cleans what the user saved.
type PreparePRBodyUseCase struct {
}

// Execute renders the seed shown in the editor.
func (uc *PreparePRBodyUseCase) Execute(_ context.Context, pr *domain.PullRequest) (string, error) {
	if pr == nil {
		return "", fmt.Errorf("pull request cannot be nil")
	}
	return renderSeed("pr-body", prBodyTemplate, pr)
}

// Clean drops comment lines and surrounding blank lines from the saved body.
func (uc *PreparePRBodyUseCase) Clean(text string) string {
	return stripCommentLines(text)
}

func renderSeed(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.String(), nil
}

// stripCommentLines removes lines starting with '#', the convention git uses
// for commit and tag message templates.
func stripCommentLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

const prBodyTemplate = `
# Describe the changes of {{.Head}} to be merged into {{.Base}}.
# Title: {{.Title}}
#
# Lines starting with '#' are ignored. An empty description is allowed.
`
