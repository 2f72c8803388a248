// Package analysis summarizes journaled estimator runs: distribution of
// the period estimates and, when the true cycle is known, accuracy and
// convergence.
package analysis

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/cycles/journal"
)

// Result is a lightweight summary of an estimator run.
type Result struct {
	RunID     string
	Estimator string
	Bars      int

	// Distribution of the period estimates after warmup.
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Final  float64

	// Accuracy against a known true period. Zero TruePeriod means the
	// truth is unknown and these fields are not populated.
	TruePeriod  float64
	MAE         float64 // mean absolute error after convergence
	ConvergedAt int     // first bar from which the estimate stays within tolerance
	Converged   bool
	Tolerance   float64
}

// DefaultTolerance is the convergence band around the true period,
// in bars.
const DefaultTolerance = 2.0

// Summarize computes a Result over the estimates of one run. warmup
// bars are excluded from the distribution; truePeriod of 0 skips the
// accuracy fields.
func Summarize(recs []journal.EstimateRecord, warmup int, truePeriod float64) Result {
	r := Result{Bars: len(recs)}
	if len(recs) == 0 {
		return r
	}

	r.RunID = recs[0].RunID
	r.Estimator = recs[0].Estimator
	r.Final = recs[len(recs)-1].Period

	periods := make([]float64, 0, len(recs))
	for _, rec := range recs {
		if rec.Step < warmup {
			continue
		}
		periods = append(periods, rec.Period)
	}
	if len(periods) == 0 {
		return r
	}

	r.Mean, r.StdDev = stat.MeanStdDev(periods, nil)
	if len(periods) < 2 {
		r.StdDev = 0
	}
	r.Min, r.Max = periods[0], periods[0]
	for _, p := range periods[1:] {
		r.Min = math.Min(r.Min, p)
		r.Max = math.Max(r.Max, p)
	}

	if truePeriod > 0 {
		r.TruePeriod = truePeriod
		r.Tolerance = DefaultTolerance
		r.ConvergedAt, r.Converged = convergence(recs, truePeriod, r.Tolerance)
		if r.Converged {
			var sum float64
			n := 0
			for _, rec := range recs[r.ConvergedAt:] {
				sum += math.Abs(rec.Period - truePeriod)
				n++
			}
			r.MAE = sum / float64(n)
		}
	}

	return r
}

// convergence finds the first bar from which every later estimate stays
// within tol of the true period.
func convergence(recs []journal.EstimateRecord, truePeriod, tol float64) (int, bool) {
	at := -1
	for i, rec := range recs {
		if math.Abs(rec.Period-truePeriod) <= tol {
			if at < 0 {
				at = i
			}
		} else {
			at = -1
		}
	}
	if at < 0 {
		return 0, false
	}
	return at, true
}

// Print writes a human-readable report of a Result.
func Print(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Estimator Run Summary")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Estimator:     %s\n", r.Estimator)
	fmt.Fprintf(w, "Bars:          %d\n", r.Bars)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period Estimates")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Mean:          %.2f\n", r.Mean)
	fmt.Fprintf(w, "Std Dev:       %.2f\n", r.StdDev)
	fmt.Fprintf(w, "Range:         %.2f - %.2f\n", r.Min, r.Max)
	fmt.Fprintf(w, "Final:         %.2f\n", r.Final)

	if r.TruePeriod > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Accuracy")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "True Period:   %.2f\n", r.TruePeriod)
		if r.Converged {
			fmt.Fprintf(w, "Converged At:  bar %d (within %.1f)\n", r.ConvergedAt, r.Tolerance)
			fmt.Fprintf(w, "MAE:           %.3f\n", r.MAE)
		} else {
			fmt.Fprintf(w, "Converged At:  never (within %.1f)\n", r.Tolerance)
		}
	}

	fmt.Fprintln(w)
}
