// ABOUTME: The parse command runs format detection and parsing over a local file
// ABOUTME: Lets operators see what a feed body yields without fetching or publishing

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"linkfeed-aggregator/core/aggregate"
	apperrors "linkfeed-aggregator/core/errors"
	"linkfeed-aggregator/core/parser"
	"linkfeed-aggregator/core/region"
	"linkfeed-aggregator/pkg/config"
)

func newParseCmd() *cobra.Command {
	var aggregated bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the descriptors extracted from a saved feed body (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return apperrors.WrapError(err, "failed to read feed body")
			}

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			detector := parser.NewDetector(region.NewResolver(), cfg.Aggregation.Decoration())
			result := detector.Parse(body)

			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(errOut, "format: %s\n", result.Format)
			if result.Fallback != nil {
				fmt.Fprintf(errOut, "plain fallback: %v\n", result.Fallback)
			}
			fmt.Fprintf(errOut, "descriptors: %d\n", len(result.Descriptors))

			out := cmd.OutOrStdout()
			if aggregated {
				links := aggregate.NewAggregator(cfg.Aggregation).Aggregate(result.Descriptors)
				for _, link := range links {
					fmt.Fprintln(out, link)
				}
				return nil
			}

			for _, d := range result.Descriptors {
				fmt.Fprintf(out, "%s\t%s\n", d.RegionCode, d.DisplayLink)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&aggregated, "aggregate", false, "apply region order, dedup and per-region limit to the output")

	return cmd
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
