package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

var (
	flagDataDir string
	flagJSONLog bool
	flagDebug   bool
)

func main() {
	// .env is optional; cron and desktop runs both work without one.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "engine",
		Short:        "Funding-news lead engine: find freshly funded companies that are hiring",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $FUNDSCOUT_DATA_DIR or .)")
	root.PersistentFlags().BoolVar(&flagJSONLog, "json", false, "log as JSON instead of console")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newSecretCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if d := os.Getenv("FUNDSCOUT_DATA_DIR"); d != "" {
		return d
	}
	return "."
}
