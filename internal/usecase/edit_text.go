package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/gitworkflow/internal/service"
)

// EditTextUseCase collects text from the user's editor and stops the
// workflow when the editor fails.
type EditTextUseCase struct {
	Editor    service.EditorService
	Presenter Presenter
}

// Execute returns the saved text.
func (uc *EditTextUseCase) Execute(ctx context.Context, seed string) string {
	text, err := uc.Editor.Edit(ctx, seed)
	if err != nil {
		var editorErr *service.EditorError
		if errors.As(err, &editorErr) {
			uc.Presenter.Fatal(fmt.Sprintf("Editor command failed: %s (%v)", editorErr.Command, editorErr.Err))
			return ""
		}
		uc.Presenter.Fatal(fmt.Sprintf("Could not edit text: %v", err))
		return ""
	}
	return text
}
