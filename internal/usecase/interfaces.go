package usecase

import "context"

// Presenter is the output surface use cases report through. Fatal and Exit
// do not return in production.
type Presenter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Print(text string)
	Table(header []string, rows [][]string)
	Fatal(msg string)
	Exit(code int)
	Interrupted()
}

// Prompter asks the user questions.
type Prompter interface {
	Prompt(ctx context.Context, message, def string, masked bool) (string, error)
	PromptYesNo(ctx context.Context, message string, def bool) (bool, error)
}
