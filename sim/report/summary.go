// Package report turns simulated cohorts into human-readable summaries and
// machine-readable files: a text digest, a survival-curve CSV, and a raw
// outcomes YAML document.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cohort-sim/cohort-sim/sim"
)

// Distribution summarizes one outcome collection.
type Distribution struct {
	Count  int
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
	Min    float64
	Max    float64
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
	}
	// Sample standard deviation needs at least two observations.
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}

// percentile computes the p-th percentile using linear interpolation.
// Input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Summary is the end-of-run digest of one simulated cohort.
type Summary struct {
	CohortID   int64
	Population int
	Horizon    int

	Deaths   int // patients absorbed within the horizon
	Events   int // patients that developed the tracked event
	Censored int // patients still alive when the horizon ran out

	Survival    Distribution
	TimeToEvent Distribution

	// Means mirror the cohort's outcome means, NaN when undefined.
	MeanSurvivalTime float64
	MeanTimeToEvent  float64
}

// Summarize computes the digest of a simulated cohort. The cohort must have
// been simulated; an unpopulated outcome set yields a summary of zeros and
// undefined means.
func Summarize(c *sim.Cohort, horizon int) *Summary {
	o := c.Outcomes
	return &Summary{
		CohortID:         c.ID,
		Population:       len(c.Patients),
		Horizon:          horizon,
		Deaths:           len(o.SurvivalTimes),
		Events:           len(o.EventTimes),
		Censored:         len(c.Patients) - len(o.SurvivalTimes),
		Survival:         NewDistribution(o.SurvivalTimes),
		TimeToEvent:      NewDistribution(o.EventTimes),
		MeanSurvivalTime: o.MeanSurvivalTime,
		MeanTimeToEvent:  o.MeanTimeToEvent,
	}
}

// Print writes the summary as an aligned text block.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Cohort %d Outcomes ===\n", s.CohortID)
	fmt.Fprintf(w, "Population          : %d\n", s.Population)
	fmt.Fprintf(w, "Horizon             : %d steps\n", s.Horizon)
	fmt.Fprintf(w, "Deaths              : %d\n", s.Deaths)
	fmt.Fprintf(w, "Developed event     : %d\n", s.Events)
	fmt.Fprintf(w, "Censored at horizon : %d\n", s.Censored)
	fmt.Fprintf(w, "Mean survival time  : %s\n", formatMean(s.MeanSurvivalTime))
	fmt.Fprintf(w, "Mean time to event  : %s\n", formatMean(s.MeanTimeToEvent))
	if s.Deaths > 0 {
		fmt.Fprintf(w, "Survival time       : p50=%.1f p95=%.1f min=%.1f max=%.1f sd=%.2f\n",
			s.Survival.P50, s.Survival.P95, s.Survival.Min, s.Survival.Max, s.Survival.StdDev)
	}
	if s.Events > 0 {
		fmt.Fprintf(w, "Time to event       : p50=%.1f p95=%.1f min=%.1f max=%.1f sd=%.2f\n",
			s.TimeToEvent.P50, s.TimeToEvent.P95, s.TimeToEvent.Min, s.TimeToEvent.Max, s.TimeToEvent.StdDev)
	}
}

// formatMean renders a possibly-undefined mean. NaN is the aggregation
// layer's sentinel for "no observations".
func formatMean(v float64) string {
	if math.IsNaN(v) {
		return "undefined (no observations)"
	}
	return fmt.Sprintf("%.4f", v)
}
