package cmd

import (
	"github.com/compozy/gitworkflow/internal/orchestrator"
	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newLoginCmd creates the login command
func newLoginCmd(app *application) *cobra.Command {
	var skipVerify bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the GitHub token used by the other commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := app.container
			var configReader repository.GitRepository
			if gitRepo, err := c.gitRepository(); err == nil {
				configReader = gitRepo
			} else {
				c.logger.Debug("login outside a repository", zap.Error(err))
			}
			accountFactory := c.accountFactory()
			if skipVerify {
				accountFactory = nil
			}
			orch := orchestrator.NewLoginOrchestrator(
				configReader,
				c.credsRepo,
				accountFactory,
				c.presenter,
				c.prompter,
				c.logger,
			)
			return orch.Execute(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Store the token without checking it against GitHub")
	return cmd
}
