package config

import (
	"github.com/spf13/cobra"
)

var (
	outputFile = ".xot.yaml"
)

// Command creates the config command.
func Command() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config",
	}
	configCmd.AddCommand(
		initCommand(),
		showCommand(),
	)
	return configCmd
}
