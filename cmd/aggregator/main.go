// ABOUTME: Main entry point for the subscription link aggregator CLI
// ABOUTME: Defines the root command and loads an optional .env file before any subcommand runs

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "aggregator",
		Short: "Merge subscription feeds into one region-ordered link list",
		Long: `aggregator fetches every configured subscription feed, extracts endpoint
descriptors from base64 share-link feeds or plain host:port#CODE lists, keeps
the configured regions in order with a per-region cap and publishes the result.

Configuration is read from the environment (see WEBPAGE_URLS, COUNTRY_ORDER,
LINKS_PER_COUNTRY, SINK_TYPE and FILE_PATH), optionally seeded from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file to load; variables already set in the environment win")

	run := newRunCmd()
	root.AddCommand(run, newParseCmd())

	// bare "aggregator" behaves like "aggregator run"
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())

	return root
}

// loadEnvFile loads path into the environment. A missing default file is fine.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
