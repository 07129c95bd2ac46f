package main

import (
	"os"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document <guid>",
	Short: "Fetch one full document from the Public Search portal",
	Long: `Document fetches the complete highlighted text of one search hit by its
GUID, e.g. US-11734097-B1 or US-20240123456-A1. The GUID and source come
from a prior search result.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")

		g, err := buildGateway()
		if err != nil {
			return err
		}
		out := g.Invoke(cmd.Context(), "ppubs_get_full_document", map[string]any{
			"guid":   args[0],
			"source": source,
		})
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
	documentCmd.Flags().String("source", "USPAT", "document source: USPAT, US-PGPUB, or USOCR")

	rootCmd.AddCommand(documentCmd)
}
