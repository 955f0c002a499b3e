package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nakamasato/xot/config"
	"github.com/nakamasato/xot/internal/graph"
	"github.com/nakamasato/xot/internal/llm"
	"github.com/nakamasato/xot/internal/reasoner"
	"github.com/nakamasato/xot/internal/server"
	"github.com/spf13/cobra"
)

var (
	addr         string
	openaiAPIKey string
	openaiModel  string
	baseURL      string
)

// Command creates the serve command.
func Command() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the interactive web interface",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address, overrides server.addr")
	serveCmd.Flags().StringVarP(&openaiAPIKey, "api-key", "k", "", "OpenAI API key (can also set via OPENAI_API_KEY environment variable)")
	serveCmd.Flags().StringVar(&openaiModel, "model", "", "Chat model, overrides llm.model")
	serveCmd.Flags().StringVar(&baseURL, "base-url", "", "OpenAI compatible endpoint, overrides llm.base_url")

	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if openaiAPIKey != "" {
		cfg.OpenAIAPIKey = openaiAPIKey
	}
	if openaiModel != "" {
		cfg.LLM.Model = openaiModel
	}
	if baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if addr == "" {
		addr = config.GetServerConfig().Addr
	}

	// The model client is built on the first question, so the interface
	// comes up even when no API key is configured yet.
	client := llm.Shared(func() (llm.Client, error) {
		return llm.NewClientFromConfig(cfg)
	})
	layoutOpts := graph.DefaultLayoutOptions()
	layoutOpts.Updates = cfg.Layout.Updates

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(reasoner.NewReasoner(client, reasoner.WithLayoutOptions(layoutOpts)))
	return srv.ListenAndServe(ctx, addr)
}
