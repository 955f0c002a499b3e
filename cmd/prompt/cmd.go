package prompt

import (
	"fmt"
	"strings"

	"github.com/nakamasato/xot/internal/prompt"
	"github.com/nakamasato/xot/internal/thought"
	"github.com/spf13/cobra"
)

var modeStr string

// Command creates the prompt command.
func Command() *cobra.Command {
	promptCmd := &cobra.Command{
		Use:   "prompt [question]",
		Short: "Print the prompt sent to the model without calling it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPrompt,
	}
	promptCmd.Flags().StringVarP(&modeStr, "mode", "m", string(thought.ModeCoT), "Reasoning type: basic, cot or got")
	return promptCmd
}

func runPrompt(cmd *cobra.Command, args []string) error {
	mode, err := thought.ParseMode(modeStr)
	if err != nil {
		return err
	}
	p, err := prompt.Render(mode, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
