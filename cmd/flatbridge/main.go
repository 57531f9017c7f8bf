package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=…".
var version = "3.3-allinone"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "flatbridge",
		Short: "Local token-authenticated Flatpak install bridge",
		Long: `flatbridge serves a loopback-only HTTP API that lets the desktop UI
list, install, update and launch Flatpak applications. Installs and updates
are only carried out after the operator confirms them on the host.

Running flatbridge without a subcommand starts the bridge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCommand()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newStatusCommand(),
		newListCommand(),
		newInstallCommand(),
		newUpdateCommand(),
		newRunCommand(),
		newVersionCommand(),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
