package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cycles/config"
	"github.com/rustyeddy/cycles/estimators"
)

var estimatorsCmd = &cobra.Command{
	Use:   "estimators",
	Short: "List the available estimators",
	Long: `List the estimators that can be named in a run configuration,
with their default parameterization and warmup.

Example:
  cycles estimators`,
	Args: cobra.NoArgs,
	RunE: runEstimators,
}

func init() {
	rootCmd.AddCommand(estimatorsCmd)
}

func runEstimators(cmd *cobra.Command, args []string) error {
	for _, name := range estimators.Names() {
		cfg := config.Default()
		cfg.Estimator.Name = name

		est, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}

		fmt.Printf("  %-12s %s (warmup %d bars)\n", name, est.Name(), est.Warmup())
	}
	return nil
}
