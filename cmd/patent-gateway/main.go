// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-gateway CLI. It exposes the
// gateway's tool registry over a command surface: list the catalog, invoke a
// tool by name, and shortcuts for the common full-text search, document, and
// PDF operations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-gateway/internal/analytics"
	"github.com/pdiddy/patent-gateway/internal/config"
	"github.com/pdiddy/patent-gateway/internal/gateway"
	"github.com/pdiddy/patent-gateway/internal/patentsview"
	"github.com/pdiddy/patent-gateway/internal/ppubs"
	"github.com/pdiddy/patent-gateway/internal/uspto"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is populated before any subcommand runs.
var cfg *types.Config

// rootCmd is the base command for the patent-gateway CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-gateway",
	Short: "Named-tool gateway over the USPTO patent data APIs",
	Long: `patent-gateway adapts the USPTO patent data services into a registry of
named, schema-described tools. The session-based Public Search portal, the
key-authenticated Open Data Portal, PTAB trials, PatentsView entity search,
office actions, litigation, and a local analytics dataset are all reachable
through one uniform call surface.

Every tool returns a JSON envelope: {success: true, results, ...} or
{error: true, message, ...}. Use 'tools' for the catalog and 'call' to invoke
any tool by name.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		loaded, err := config.Load(cfgFile, secretsDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: environment only)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of one-file-per-key API secrets")
	rootCmd.PersistentFlags().Bool("verbose", false, "log requests to stderr")
}

// newLogger builds the CLI logger. Logs go to stderr so stdout stays clean
// for tool output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildGateway wires every upstream client from the loaded configuration.
// The analytics store is attached only when its database file already
// exists, so a plain API deployment does not grow an empty SQLite file.
func buildGateway() (*gateway.Gateway, error) {
	logger := newLogger()

	clients := gateway.Clients{
		PPubs:        ppubs.New(cfg.PPubs, logger),
		ODP:          uspto.NewClient(cfg.ODP, logger),
		PTAB:         uspto.NewPTABClient(cfg.ODP, logger),
		OfficeAction: uspto.NewOfficeActionClient(cfg.ODP, logger),
		Litigation:   uspto.NewLitigationClient(cfg.ODP, logger),
		Citations:    uspto.NewCitationClient(cfg.ODP, logger),
		PatentsView:  patentsview.New(cfg.PatentsView, logger),
	}
	if _, err := os.Stat(cfg.Analytics.DatabasePath); err == nil {
		store, err := analytics.NewStore(cfg.Analytics)
		if err != nil {
			return nil, fmt.Errorf("opening analytics database: %w", err)
		}
		clients.Analytics = store
	}

	return gateway.New(clients, cfg.Truncation, logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
