// Package config loads estimator run configurations from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/cycles/estimators"
)

// Config represents a complete estimator run configuration.
type Config struct {
	Source    SourceConfig    `json:"source" yaml:"source"`
	Estimator EstimatorConfig `json:"estimator" yaml:"estimator"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
}

// SourceConfig selects the input series: a candle CSV file, or a synthetic
// sine when no path is given.
type SourceConfig struct {
	CSV   string  `json:"csv,omitempty" yaml:"csv,omitempty"`
	Bars  int     `json:"bars,omitempty" yaml:"bars,omitempty"`
	Cycle float64 `json:"cycle,omitempty" yaml:"cycle,omitempty"` // synthetic period
	Noise float64 `json:"noise,omitempty" yaml:"noise,omitempty"`
	Seed  int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// EstimatorConfig selects and parameterizes an estimator. Zero values fall
// back to each estimator's defaults; fields that do not apply to the named
// estimator are rejected at Build.
type EstimatorConfig struct {
	Name       string  `json:"name" yaml:"name"`
	Length     int     `json:"length,omitempty" yaml:"length,omitempty"`
	NumCoef    int     `json:"num_coef,omitempty" yaml:"num_coef,omitempty"`
	LowerBound int     `json:"lower_bound,omitempty" yaml:"lower_bound,omitempty"`
	UpperBound int     `json:"upper_bound,omitempty" yaml:"upper_bound,omitempty"`
	MinPeriod  int     `json:"min_period,omitempty" yaml:"min_period,omitempty"`
	MaxPeriod  int     `json:"max_period,omitempty" yaml:"max_period,omitempty"`
	AvgLength  int     `json:"avg_length,omitempty" yaml:"avg_length,omitempty"`
	Alpha      float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

// JournalConfig selects where estimates are recorded.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	RunsFile      string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	EstimatesFile string `json:"estimates_file,omitempty" yaml:"estimates_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// content; YAML is tried first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Estimator.Name == "" {
		return fmt.Errorf("estimator.name is required")
	}
	if !slices.Contains(estimators.Names(), c.Estimator.Name) {
		return fmt.Errorf("unknown estimator: %s", c.Estimator.Name)
	}
	if c.Source.CSV == "" && c.Source.Bars < 0 {
		return fmt.Errorf("source.bars must not be negative")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.EstimatesFile == "" {
			return fmt.Errorf("journal runs_file and estimates_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Build constructs the configured estimator. Parameter validation is
// delegated to the estimator constructors, which fail closed.
func (c *Config) Build() (estimators.Estimator, error) {
	e := c.Estimator
	switch e.Name {
	case "channelized":
		return estimators.NewChannelizedReceiver(), nil

	case "combined":
		return estimators.NewCombinedBandpass(estimators.CombinedBandpassConfig{
			MinPeriod: e.MinPeriod,
			MaxPeriod: e.MaxPeriod,
		})

	case "autocorr":
		return estimators.NewAutocorrPeriodogram(estimators.AutocorrPeriodogramConfig{
			MinPeriod: e.MinPeriod,
			MaxLag:    e.MaxPeriod,
			AvgLength: e.AvgLength,
		})

	case "burg":
		return estimators.NewBurgMESA(estimators.BurgMESAConfig{
			Length:     e.Length,
			NumCoef:    e.NumCoef,
			LowerBound: e.LowerBound,
			UpperBound: e.UpperBound,
		})

	case "griffiths":
		return estimators.NewGriffithsPredictor(estimators.GriffithsPredictorConfig{
			Length:     e.Length,
			LowerBound: e.LowerBound,
			UpperBound: e.UpperBound,
		})

	case "homodyne":
		return estimators.NewHomodyneQuadrature(estimators.HomodyneQuadratureConfig{
			Alpha: e.Alpha,
		})

	default:
		return nil, fmt.Errorf("unknown estimator: %s", e.Name)
	}
}

// Default returns a configuration with sensible defaults: a clean
// synthetic 20-bar cycle through the channelized receiver, no journal.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Bars:  200,
			Cycle: 20,
		},
		Estimator: EstimatorConfig{
			Name: "channelized",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
