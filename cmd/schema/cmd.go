package schema

import (
	"encoding/json"

	"github.com/nakamasato/xot/internal/reasoner"
	"github.com/spf13/cobra"
)

// Command creates the schema command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a reasoning result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reasoner.ResultSchema.Schema)
		},
	}
}
