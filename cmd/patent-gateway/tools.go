package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as YAML",
	Long: `Tools renders every registered tool with its parameter schema. The output
is the same catalog an agent host sees: name, description, and for each
parameter its type, whether it is required, and its default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildGateway()
		if err != nil {
			return err
		}
		out, err := g.Catalog()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
