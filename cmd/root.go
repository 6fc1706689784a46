package cmd

import (
	"context"
	"errors"

	"github.com/compozy/gitworkflow/internal/ui"
	"github.com/compozy/gitworkflow/pkg/version"
	"github.com/spf13/cobra"
)

// application carries the container from PersistentPreRunE to the commands.
type application struct {
	interrupts *ui.InterruptHandler
	container  *container
}

func newRootCmd(app *application) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "git-workflow",
		Short:         "Automates the repetitive steps of a GitHub workflow",
		Long:          `git-workflow keeps master up to date, opens pull requests and tags releases from the command line.`,
		Version:       version.Summary(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			c, err := newContainer(cmd.Flags(), app.interrupts)
			if err != nil {
				return err
			}
			app.container = c
			return nil
		},
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.AddCommand(
		newSyncMasterCmd(app),
		newPRCmd(app),
		newReleaseCmd(app),
		newLoginCmd(app),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line. Failures are reported through the
// presenter, which terminates the process.
func Execute(ctx context.Context, interrupts *ui.InterruptHandler) {
	app := &application{interrupts: interrupts}
	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		app.fail(err)
	}
}

func (app *application) fail(err error) {
	presenter := ui.NewPresenter()
	if app.container != nil {
		presenter = app.container.presenter
	}
	if errors.Is(err, ui.ErrCancelledInput) {
		presenter.Interrupted()
		return
	}
	presenter.Fatal(err.Error())
}
