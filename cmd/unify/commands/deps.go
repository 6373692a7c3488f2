package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/unify/internal/app"
)

func (c *CLI) newManageDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage-deps",
		Short: "Add the unification package to members and remove it from excluded ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages, _ := cmd.Flags().GetStringArray("package")
			fromDisk, _ := cmd.Flags().GetBool("from-disk")

			return exit(c.app.ManageDeps(cmd.Context(), app.DepsOptions{
				Packages: packages,
				Mode:     mode(cmd),
				FromDisk: fromDisk,
			}))
		},
	}
	cmd.Flags().StringArrayP("package", "p", nil, "Members to operate on (defaults to the whole workspace)")
	cmd.Flags().Bool("from-disk", false, "Check manifests on disk when applying instead of the loaded metadata")
	addModeFlags(cmd)
	return cmd
}

func (c *CLI) newRemoveDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-deps",
		Short: "Remove the unification package from members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages, _ := cmd.Flags().GetStringArray("package")

			return exit(c.app.RemoveDeps(cmd.Context(), app.DepsOptions{
				Packages: packages,
				Mode:     mode(cmd),
			}))
		},
	}
	cmd.Flags().StringArrayP("package", "p", nil, "Members to operate on (defaults to the whole workspace)")
	addModeFlags(cmd)
	return cmd
}

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish -p NAME [-- ARGS...]",
		Short: "Publish a member without its dependency on the unification package",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("package")
			return c.app.Publish(cmd.Context(), name, args)
		},
	}
	cmd.Flags().StringP("package", "p", "", "Member to publish")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}
