// Command badgectl manages the badge dataset and runs recommendations offline.
package main

import (
	"fmt"
	"os"

	"badge-sync/internal/logging"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "badgectl",
		Short:         "Badge recommender tooling",
		Long:          "badgectl migrates and seeds the skill dataset store and runs the badge recommender against a CSV dataset.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (trace, debug, info, warn, error)")

	logger := func(cmd *cobra.Command) zerolog.Logger {
		return logging.New(logging.Config{Level: logLevel, Format: "console", Output: cmd.ErrOrStderr()})
	}

	root.AddCommand(newMigrateCmd(logger), newSeedCmd(logger), newRecommendCmd(logger))
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
