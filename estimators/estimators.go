// Package estimators provides streaming dominant-cycle estimators for
// quasi-periodic market data.
//
// Each estimator consumes one price sample per bar and maintains a running
// estimate of the dominant oscillation period, in bars. Adaptive indicators
// use the estimate to retune their own lookback length instead of trading a
// fixed period.
package estimators

import (
	"fmt"
	"sort"
)

// Estimator computes a streaming dominant-cycle period from price samples.
// It is deterministic and safe to use in live, replay, and backtests.
type Estimator interface {
	// Name returns a stable identifier like "BurgMESA(32,8)".
	Name() string

	// Warmup returns how many updates are needed before the estimate is
	// meaningful. Earlier calls return the estimator's default period.
	Warmup() int

	// Reset clears all internal state but keeps the configuration.
	Reset()

	// Update consumes the next bar's sample and returns the current period
	// estimate. The result is always finite; estimators with configured
	// bounds keep it inside them.
	Update(sample float64) float64
}

// Bounder is implemented by estimators with configured period bounds.
type Bounder interface {
	Bounds() (lower, upper float64)
}

// maxHypothesisPeriod caps configurable period ranges and lookbacks so the
// per-hypothesis tables stay small and are sized once at construction.
const maxHypothesisPeriod = 256

type factory func() Estimator

var registry = make(map[string]factory)

func register(name string, fn factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("estimators: duplicate registration %q", name))
	}
	registry[name] = fn
}

// ByName constructs a default-configured estimator by its registered name.
func ByName(name string) (Estimator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown estimator %q (have %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered estimator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
