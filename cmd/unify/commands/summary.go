package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/unify/internal/app"
)

func (c *CLI) newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the build summary of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages, _ := cmd.Flags().GetStringArray("package")
			save, _ := cmd.Flags().GetString("save")
			compare, _ := cmd.Flags().GetString("compare")

			return exit(c.app.Summary(cmd.Context(), app.SummaryOptions{
				Packages: packages,
				Save:     save,
				Compare:  compare,
			}))
		},
	}
	cmd.Flags().StringArrayP("package", "p", nil, "Initial members (defaults to every unified member)")
	cmd.Flags().String("save", "", "Store the summary under this name")
	cmd.Flags().String("compare", "", "Diff against the summary stored under this name, exit 1 if it differs")
	return cmd
}
