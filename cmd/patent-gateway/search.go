package main

import (
	"os"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over the Public Search portal",
	Long: `Search runs a Public Search full-text query. The query uses the portal's
own syntax: field suffixes like .ti. (title) and .in. (inventor), proximity
operators, and boolean connectives.

  patent-gateway search 'quantum.ti. AND computing.ab.'
  patent-gateway search 'drone' --applications --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		start, _ := cmd.Flags().GetInt("start")
		operator, _ := cmd.Flags().GetString("operator")
		sort, _ := cmd.Flags().GetString("sort")
		applications, _ := cmd.Flags().GetBool("applications")

		tool := "ppubs_search_patents"
		if applications {
			tool = "ppubs_search_applications"
		}
		toolArgs := map[string]any{
			"query":    args[0],
			"limit":    limit,
			"start":    start,
			"operator": operator,
		}
		if sort != "" {
			toolArgs["sort"] = sort
		}

		g, err := buildGateway()
		if err != nil {
			return err
		}
		out := g.Invoke(cmd.Context(), tool, toolArgs)
		if err := printJSON(out); err != nil {
			return err
		}
		if isError(out) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results to return")
	searchCmd.Flags().Int("start", 0, "result offset for pagination")
	searchCmd.Flags().String("operator", "OR", "default boolean operator (AND or OR)")
	searchCmd.Flags().String("sort", "", "sort order (default: publication date descending)")
	searchCmd.Flags().Bool("applications", false, "search published applications instead of granted patents")

	rootCmd.AddCommand(searchCmd)
}
