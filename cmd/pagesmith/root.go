package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := newAppContext(flags)

	cmd := &cobra.Command{
		Use:           "pagesmith",
		Short:         "pagesmith builds personal-brand pages from reusable blocks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default ~/.pagesmith/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newBlocksCmd())
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newPageCmd(app))
	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDeployCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newUploadCmd(app))

	return cmd
}
