package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <patent-number>",
	Short: "Download a granted patent as PDF",
	Long: `Pdf looks the patent up in the Public Search portal, submits a print job
for every page, waits for the job to complete, and writes the assembled PDF
to disk. Print jobs are generated server-side, so this can take a while for
long patents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		g, err := buildGateway()
		if err != nil {
			return err
		}
		out := g.Invoke(cmd.Context(), "ppubs_download_patent_pdf", map[string]any{
			"patent_number": args[0],
		})
		if isError(out) {
			if err := printJSON(out); err != nil {
				return err
			}
			os.Exit(1)
		}

		content, _ := out["content"].(string)
		data, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return fmt.Errorf("decoding PDF content: %w", err)
		}
		if output == "" {
			output, _ = out["filename"].(string)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", output, len(data))
		return nil
	},
}

func init() {
	pdfCmd.Flags().String("output", "", "output path (default: <guid>.pdf)")

	rootCmd.AddCommand(pdfCmd)
}
