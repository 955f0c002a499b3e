package config

import (
	"fmt"

	"github.com/nakamasato/xot/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (the API key is never printed)",
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cmd.Print(string(out))
	if cfg.OpenAIAPIKey != "" {
		cmd.Println("# openai_api_key is set")
	}
	return nil
}
