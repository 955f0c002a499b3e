package config

import (
	"fmt"
	"os"

	"github.com/nakamasato/xot/config"
	"github.com/spf13/cobra"
)

func initCommand() *cobra.Command {
	cmdInit := &cobra.Command{
		Use:   "init",
		Short: "Create a default .xot.yaml configuration file",
		RunE:  runInit,
	}
	cmdInit.Flags().StringVarP(&outputFile, "output", "o", outputFile, "Path of the configuration file")
	return cmdInit
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(outputFile); err == nil {
		cmd.Printf("%s already exists\n", outputFile)
		return nil
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := config.CreateDefaultConfigFile(file); err != nil {
		return err
	}

	cmd.Printf("Default configuration file created at %s\n", outputFile)
	return nil
}
