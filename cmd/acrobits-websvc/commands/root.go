package commands

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X .../commands.Version=...".
var Version = "dev"

var configPath string

// Execute runs the command line. Without a subcommand it serves.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()
	root := &cobra.Command{
		Use:          "acrobits-websvc",
		Short:        "Acrobits softphone web service gateway",
		SilenceUsage: true,
		Version:      Version,
		RunE:         serve.RunE,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", `configuration file (YAML or JSON, "-" for stdin)`)

	root.AddCommand(serve, migrateCmd(), versionCmd())
	return root
}
