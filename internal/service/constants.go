package service

// Editor bridge constants
const (
	// DefaultEditor is used when no configuration names an editor
	DefaultEditor = "vi"
	// EditorEnvVar overrides the editor for this tool only
	EditorEnvVar = "GIT_WORKFLOW_EDITOR"
	// EditorConfigKey is the repository setting consulted first
	EditorConfigKey = "core.editor"
	// EditFilePrefix and EditFileSuffix frame the unique edit-session file name
	EditFilePrefix = "git-workflow-"
	EditFileSuffix = ".md"
	// EditFilePermissions keeps drafts private to the user
	EditFilePermissions = 0600
)
