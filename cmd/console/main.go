package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clinicplace/console/internal/interfaces/cli/check"
	"github.com/clinicplace/console/internal/interfaces/cli/server"
	"github.com/clinicplace/console/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "console",
		Short:   "ClinicPlace admin console",
		Long:    `The ClinicPlace console serves the admin console and the member dashboard on top of the marketplace API.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		check.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
