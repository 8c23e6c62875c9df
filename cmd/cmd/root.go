package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "minifs"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - FAT-style userspace filesystem toolkit",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineMkfsCommand(),
		DefineInfoCommand(),
		DefineLsCommand(),
		DefineCreateCommand(),
		DefineRmCommand(),
		DefineStatCommand(),
		DefineAddCommand(),
		DefineCatCommand(),
		DefineExportCommand(),
		DefineMountCommand(),
	)

	return rootCmd.Execute()
}
