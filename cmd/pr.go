package cmd

import (
	"github.com/compozy/gitworkflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newPRCmd creates the pr command
func newPRCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "pr",
		Short: "Open a pull request for the current branch",
		Long: `Open a pull request for the current branch.

This command:
- Checks that the working tree is clean
- Asks for a title, a description (in your editor) and reviewers
- Pushes the branch and opens the pull request on GitHub
- Requests the reviews

Reviewer aliases from the reviewer_aliases setting are resolved first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := app.container
			gitRepo, err := c.gitRepository()
			if err != nil {
				return err
			}
			orch := orchestrator.NewPullRequestOrchestrator(
				gitRepo,
				c.credsRepo,
				c.githubFactory(),
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
