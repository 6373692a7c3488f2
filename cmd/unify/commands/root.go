// Package commands implements the CLI commands for unify.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/unify/internal/app"
	"go.trai.ch/unify/internal/build"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/engine/workspace"
)

// CLI represents the command line interface for unify.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, opts app.InitOptions) (domain.Outcome, error)
	Generate(ctx context.Context, diff bool) (domain.Outcome, error)
	Verify(ctx context.Context) error
	ManageDeps(ctx context.Context, opts app.DepsOptions) (domain.Outcome, error)
	RemoveDeps(ctx context.Context, opts app.DepsOptions) (domain.Outcome, error)
	Publish(ctx context.Context, name string, args []string) error
	Disable(ctx context.Context, diff bool) (domain.Outcome, error)
	Summary(ctx context.Context, opts app.SummaryOptions) (domain.Outcome, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "unify",
		Short:         "Manage a workspace package that unifies third-party dependency features",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newManageDepsCmd())
	rootCmd.AddCommand(c.newRemoveDepsCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newDisableCmd())
	rootCmd.AddCommand(c.newSummaryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// exit turns an outcome with work left undone into domain.ErrPendingChanges.
func exit(outcome domain.Outcome, err error) error {
	if err != nil {
		return err
	}
	if outcome.ExitCode() != 0 {
		return domain.ErrPendingChanges
	}
	return nil
}

func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dry-run", "n", false, "Print operations without performing them")
	cmd.Flags().BoolP("yes", "y", false, "Proceed without asking for confirmation")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "yes")
}

func mode(cmd *cobra.Command) workspace.Mode {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	return workspace.ModeFromFlags(dryRun, yes)
}
