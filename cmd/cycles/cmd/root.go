package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Streaming dominant-cycle estimation for price series",
	Long: `Cycles estimates the dominant cycle period of a price series, bar by bar,
using a family of streaming estimators.

It provides tools for:
  - Running an estimator over a candle CSV file or a synthetic series
  - Recording per-bar estimates to CSV or SQLite journals
  - Querying recorded runs
  - Generating and validating run configurations

Complete documentation is available at https://github.com/rustyeddy/cycles`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
