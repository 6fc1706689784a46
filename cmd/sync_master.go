package cmd

import (
	"github.com/compozy/gitworkflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newSyncMasterCmd creates the sync-master command
func newSyncMasterCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-master",
		Short: "Fast-forward master from its remote",
		Long: `Fast-forward the local master branch from its remote.

The working tree must be clean. Stale remote branches are pruned and tags are
not fetched. When the update fails the original branch is checked out again
and you decide whether to continue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := app.container
			gitRepo, err := c.gitRepository()
			if err != nil {
				return err
			}
			orch := orchestrator.NewSyncMasterOrchestrator(gitRepo, c.presenter, c.prompter, c.logger)
			return orch.Execute(cmd.Context())
		},
	}
}
