package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/nakamasato/xot/cmd/ask"
	configcmd "github.com/nakamasato/xot/cmd/config"
	promptcmd "github.com/nakamasato/xot/cmd/prompt"
	"github.com/nakamasato/xot/cmd/schema"
	"github.com/nakamasato/xot/cmd/serve"
	"github.com/nakamasato/xot/config"
	"github.com/nakamasato/xot/internal/logging"
	"github.com/spf13/cobra"
)

var configFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               "xot",
	Short:             "xot visualizes how a language model reasons",
	Long:              `xot asks a language model a question with a Basic, Chain of Thought or Graph of Thoughts prompt and renders the reasoning as an interactive graph.`,
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(
		ask.Command(),
		serve.Command(),
		promptcmd.Command(),
		schema.Command(),
		configcmd.Command(),
	)
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".xot.yaml", "Config file")
}

// initialize loads .env, the config file and sets up logging before any subcommand runs.
func initialize(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	f, err := os.Open(configFile)
	switch {
	case err == nil:
		defer f.Close()
		if err := config.InitConfig(f); err != nil {
			return err
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := config.InitConfig(nil); err != nil {
			return err
		}
	default:
		return err
	}

	cfg := config.GetConfig()
	logging.InitLogger(cfg.Log.Level, cfg.Log.File)
	return nil
}
