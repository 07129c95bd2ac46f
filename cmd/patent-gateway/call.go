package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool by name",
	Long: `Call invokes a registered tool and prints its JSON envelope on stdout.
Arguments are passed as a JSON object via --params:

  patent-gateway call ppubs_search_patents --params '{"query": "quantum.ti."}'
  patent-gateway call get_app --params '{"app_num": "14412875"}'

The command exits non-zero when the envelope is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("params")
		toolArgs := map[string]any{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &toolArgs); err != nil {
				return fmt.Errorf("--params must be a JSON object: %w", err)
			}
		}

		g, err := buildGateway()
		if err != nil {
			return err
		}
		out := g.Invoke(cmd.Context(), args[0], toolArgs)
		if err := printJSON(out); err != nil {
			return err
		}
		if isError(out) {
			os.Exit(1)
		}
		return nil
	},
}

func isError(m map[string]any) bool {
	flagged, _ := m["error"].(bool)
	return flagged
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	callCmd.Flags().String("params", "", "tool arguments as a JSON object")

	rootCmd.AddCommand(callCmd)
}
