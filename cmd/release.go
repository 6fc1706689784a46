package cmd

import (
	"github.com/compozy/gitworkflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newReleaseCmd creates the release command
func newReleaseCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Tag a new version on top of master",
		Long: `Tag a new version on top of an up to date master.

The next version is the latest semantic version tag bumped by patch, minor or
major. The tag message is written in your editor and the tag is pushed after
confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := app.container
			gitRepo, err := c.gitRepository()
			if err != nil {
				return err
			}
			orch := orchestrator.NewReleaseOrchestrator(
				gitRepo,
				c.editorService(gitRepo),
				c.presenter,
				c.prompter,
				c.cfg,
				c.logger,
			)
			return orch.Execute(cmd.Context())
		},
	}
}
