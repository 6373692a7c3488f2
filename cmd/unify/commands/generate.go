package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the managed section of the unification package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diff, _ := cmd.Flags().GetBool("diff")
			return exit(c.app.Generate(cmd.Context(), diff))
		},
	}
	cmd.Flags().Bool("diff", false, "Print a diff instead of writing, exit 1 if it is not empty")
	return cmd
}

func (c *CLI) newDisableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Replace the managed section with a disabled notice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diff, _ := cmd.Flags().GetBool("diff")
			return exit(c.app.Disable(cmd.Context(), diff))
		},
	}
	cmd.Flags().Bool("diff", false, "Print a diff instead of writing, exit 1 if it is not empty")
	return cmd
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the unification package is wired up and up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Verify(cmd.Context())
		},
	}
}
