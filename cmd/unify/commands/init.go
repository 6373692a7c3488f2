package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/unify/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Create a new unification package and its config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("package-name")
			skipConfig, _ := cmd.Flags().GetBool("skip-config")

			return exit(c.app.Init(cmd.Context(), app.InitOptions{
				Path:        args[0],
				PackageName: name,
				SkipConfig:  skipConfig,
				Mode:        mode(cmd),
			}))
		},
	}
	cmd.Flags().String("package-name", "", "Name of the new package (defaults to the last path component)")
	cmd.Flags().Bool("skip-config", false, "Do not write a config file")
	addModeFlags(cmd)
	return cmd
}
