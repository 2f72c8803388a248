package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cycles/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled estimator runs",
	Long: `Query and display journaled estimates from a SQLite database.

Subcommands:
  run - List the per-bar estimates of a specific run

Examples:
  cycles journal run <run-id>
  cycles journal run <run-id> -d runs.db`,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "List the per-bar estimates of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./cycles.sqlite", "path to SQLite journal DB")
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := args[0]
	recs, err := j.ListEstimates(runID)
	if err != nil {
		return fmt.Errorf("query estimates: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no estimates for run %s", runID)
	}

	fmt.Printf("Run %s (%s, %d bars)\n\n", runID, recs[0].Estimator, len(recs))
	fmt.Printf("%6s  %-20s  %12s  %8s\n", "step", "time", "sample", "period")
	for _, r := range recs {
		fmt.Printf("%6d  %-20s  %12.4f  %8.2f\n",
			r.Step, r.Time.Format("2006-01-02 15:04:05"), r.Sample, r.Period)
	}
	return nil
}
