package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cycles/analysis"
	"github.com/rustyeddy/cycles/config"
	"github.com/rustyeddy/cycles/journal"
	"github.com/rustyeddy/cycles/pkg/id"
	"github.com/rustyeddy/cycles/pricing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an estimator from a config file",
	Long: `Run a dominant-cycle estimator using settings from a configuration file.

The config file specifies the input series (a candle CSV or a synthetic
sine), the estimator and its parameters, and where to journal the
per-bar estimates.

Example:
  cycles run -f examples/configs/basic.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	est, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build estimator: %w", err)
	}

	candles, source, err := loadSeries(cfg)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("no bars in %s", source)
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	runID := id.New()
	err = j.RecordRun(journal.RunRecord{
		RunID:     runID,
		Estimator: est.Name(),
		Source:    source,
		Bars:      len(candles),
		StartedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Printf("  Estimator: %s (warmup %d bars)\n", est.Name(), est.Warmup())
	fmt.Printf("  Source: %s (%d bars)\n\n", source, len(candles))

	recs := make([]journal.EstimateRecord, 0, len(candles))
	for i, c := range candles {
		rec := journal.EstimateRecord{
			RunID:     runID,
			Estimator: est.Name(),
			Step:      i,
			Time:      c.Time,
			Sample:    c.Close,
			Period:    est.Update(c.Close),
		}
		if err := j.RecordEstimate(rec); err != nil {
			return fmt.Errorf("record estimate at bar %d: %w", i, err)
		}
		recs = append(recs, rec)
	}

	analysis.Print(cmd.OutOrStdout(), analysis.Summarize(recs, est.Warmup(), truePeriod(cfg)))
	switch cfg.Journal.Type {
	case "csv":
		fmt.Printf("\nEstimates saved to:\n  - %s\n  - %s\n", cfg.Journal.RunsFile, cfg.Journal.EstimatesFile)
	case "sqlite":
		fmt.Printf("\nEstimates saved to: %s\n", cfg.Journal.DBPath)
	}

	return nil
}

// truePeriod returns the known cycle length for synthetic sources, 0
// when the truth is unknown.
func truePeriod(cfg *config.Config) float64 {
	if cfg.Source.CSV != "" {
		return 0
	}
	if cfg.Source.Cycle > 0 {
		return cfg.Source.Cycle
	}
	return 20 // Synth default
}

func loadSeries(cfg *config.Config) ([]pricing.Candle, string, error) {
	if cfg.Source.CSV != "" {
		candles, err := pricing.LoadCandles(cfg.Source.CSV)
		return candles, filepath.Base(cfg.Source.CSV), err
	}

	candles := pricing.Synth(pricing.SynthConfig{
		Period: cfg.Source.Cycle,
		Noise:  cfg.Source.Noise,
		Bars:   cfg.Source.Bars,
		Seed:   cfg.Source.Seed,
	})
	return candles, "synth", nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.RunsFile, cfg.Journal.EstimatesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return journal.Discard(), nil
	}
}
