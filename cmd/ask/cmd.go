package ask

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nakamasato/xot/config"
	"github.com/nakamasato/xot/internal/chart"
	"github.com/nakamasato/xot/internal/graph"
	"github.com/nakamasato/xot/internal/llm"
	"github.com/nakamasato/xot/internal/logging"
	"github.com/nakamasato/xot/internal/reasoner"
	"github.com/nakamasato/xot/internal/thought"
	"github.com/spf13/cobra"
)

var (
	modeStr      string
	outputFile   string
	format       string
	openaiAPIKey string
	openaiModel  string
	baseURL      string
	responseFile string
)

// Command creates the ask command.
func Command() *cobra.Command {
	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question and render the reasoning graph",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	askCmd.Flags().StringVarP(&modeStr, "mode", "m", string(thought.ModeCoT), "Reasoning type: basic, cot or got")
	askCmd.Flags().StringVarP(&outputFile, "output", "o", "chart.html", "Output HTML file for the chart (format html)")
	askCmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: text, json or html")
	askCmd.Flags().StringVarP(&openaiAPIKey, "api-key", "k", "", "OpenAI API key (can also set via OPENAI_API_KEY environment variable)")
	askCmd.Flags().StringVar(&openaiModel, "model", "", "Chat model, overrides llm.model")
	askCmd.Flags().StringVar(&baseURL, "base-url", "", "OpenAI compatible endpoint, overrides llm.base_url (e.g. http://localhost:11434/v1)")
	askCmd.Flags().StringVarP(&responseFile, "response-file", "r", "", "Parse a saved model response instead of calling the model")

	return askCmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.GetConfig()
	question := strings.Join(args, " ")

	mode, err := thought.ParseMode(modeStr)
	if err != nil {
		return err
	}
	if openaiAPIKey != "" {
		cfg.OpenAIAPIKey = openaiAPIKey
	}
	if openaiModel != "" {
		cfg.LLM.Model = openaiModel
	}
	if baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}

	client := llm.Shared(func() (llm.Client, error) {
		return llm.NewClientFromConfig(cfg)
	})
	layoutOpts := graph.DefaultLayoutOptions()
	layoutOpts.Updates = cfg.Layout.Updates
	r := reasoner.NewReasoner(client, reasoner.WithLayoutOptions(layoutOpts))

	var result *reasoner.Result
	if responseFile != "" {
		content, err := os.ReadFile(responseFile)
		if err != nil {
			return fmt.Errorf("failed to read response file: %w", err)
		}
		result, err = r.Build(mode, question, string(content))
		if err != nil {
			return err
		}
	} else {
		logging.Logger.Infof("asking %s: %s", mode.DisplayName(), question)
		result, err = r.Run(ctx, mode, question)
		if err != nil {
			logging.Logger.Errorf("An error occurred: %v", err)
			return err
		}
	}

	return writeResult(cmd.OutOrStdout(), result)
}

func writeResult(w io.Writer, result *reasoner.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		printText(w, result)
		return nil
	case "html":
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := chart.WriteHTML(f, result.Page()); err != nil {
			return err
		}
		printText(w, result)
		fmt.Fprintf(w, "\nChart has been written to %s\n", outputFile)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func printText(w io.Writer, result *reasoner.Result) {
	fmt.Fprintf(w, "Reasoning Type: %s\n", result.Mode.DisplayName())
	fmt.Fprintln(w, "-----------------------------")
	graph.Assemble(result.Parsed).Display(w)
	fmt.Fprintln(w, "-----------------------------")
	fmt.Fprintf(w, "Final Answer:\n%s\n", result.Parsed.FinalAnswer)
}
