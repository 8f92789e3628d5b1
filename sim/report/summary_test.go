package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cohort-sim/cohort-sim/sim"
)

// simulatedCohort runs a small cohort to completion for summary tests.
func simulatedCohort(t *testing.T, matrix sim.TransitionMatrix, population, horizon int) *sim.Cohort {
	t.Helper()
	model := &sim.Model{Matrix: matrix, Terminal: 2, Event: 1, Initial: 0}
	c, err := sim.NewCohort(sim.CohortConfig{ID: 0, Population: population}, model)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Simulate(horizon); err != nil {
		t.Fatal(err)
	}
	return c
}

func certainDeath() sim.TransitionMatrix {
	return sim.TransitionMatrix{
		{0, 0, 1},
		{0, 0, 1},
		{0, 0, 1},
	}
}

func identity() sim.TransitionMatrix {
	return sim.TransitionMatrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// === Distribution Tests ===

func TestNewDistribution_Empty(t *testing.T) {
	d := NewDistribution(nil)
	if d.Count != 0 || d.Mean != 0 || d.P50 != 0 {
		t.Errorf("empty input produced %+v, want zero value", d)
	}
}

func TestNewDistribution_SingleValue(t *testing.T) {
	d := NewDistribution([]float64{3.5})
	if d.Count != 1 || d.Mean != 3.5 || d.P50 != 3.5 || d.Min != 3.5 || d.Max != 3.5 {
		t.Errorf("single value produced %+v", d)
	}
	if d.StdDev != 0 {
		t.Errorf("single-value StdDev = %v, want 0", d.StdDev)
	}
}

func TestNewDistribution_KnownValues(t *testing.T) {
	// Unsorted input; NewDistribution must sort a copy.
	values := []float64{4, 1, 3, 2}
	d := NewDistribution(values)

	if d.Count != 4 {
		t.Errorf("Count = %d, want 4", d.Count)
	}
	if d.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", d.Mean)
	}
	if d.Min != 1 || d.Max != 4 {
		t.Errorf("Min/Max = %v/%v, want 1/4", d.Min, d.Max)
	}
	// rank(50) = 1.5 between sorted[1]=2 and sorted[2]=3
	if d.P50 != 2.5 {
		t.Errorf("P50 = %v, want 2.5", d.P50)
	}
	// rank(95) = 2.85 between sorted[2]=3 and sorted[3]=4
	if math.Abs(d.P95-3.85) > 1e-12 {
		t.Errorf("P95 = %v, want 3.85", d.P95)
	}
	// Sample standard deviation of {1,2,3,4} is sqrt(5/3).
	if math.Abs(d.StdDev-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", d.StdDev, math.Sqrt(5.0/3.0))
	}

	// Input order must be preserved.
	if values[0] != 4 || values[3] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

// === Summary Tests ===

func TestSummarize_CertainDeath(t *testing.T) {
	c := simulatedCohort(t, certainDeath(), 5, 10)
	s := Summarize(c, 10)

	if s.Population != 5 || s.Deaths != 5 || s.Censored != 0 {
		t.Errorf("counts = %+v", s)
	}
	if s.MeanSurvivalTime != 0.5 {
		t.Errorf("MeanSurvivalTime = %v, want 0.5", s.MeanSurvivalTime)
	}
	if s.Survival.Count != 5 || s.Survival.Min != 0.5 || s.Survival.Max != 0.5 {
		t.Errorf("survival distribution = %+v", s.Survival)
	}
	if s.Events != 0 {
		t.Errorf("Events = %d, want 0", s.Events)
	}
}

func TestSummarize_IdentityCohortUndefinedMeans(t *testing.T) {
	c := simulatedCohort(t, identity(), 4, 10)
	s := Summarize(c, 10)

	if s.Deaths != 0 || s.Events != 0 || s.Censored != 4 {
		t.Errorf("counts = deaths %d events %d censored %d", s.Deaths, s.Events, s.Censored)
	}
	if !math.IsNaN(s.MeanSurvivalTime) || !math.IsNaN(s.MeanTimeToEvent) {
		t.Errorf("means = (%v, %v), want NaN", s.MeanSurvivalTime, s.MeanTimeToEvent)
	}
}

func TestSummary_Print(t *testing.T) {
	c := simulatedCohort(t, certainDeath(), 5, 10)
	var buf bytes.Buffer
	Summarize(c, 10).Print(&buf)

	out := buf.String()
	for _, want := range []string{
		"=== Cohort 0 Outcomes ===",
		"Population          : 5",
		"Horizon             : 10 steps",
		"Deaths              : 5",
		"Mean survival time  : 0.5000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_PrintUndefinedMeans(t *testing.T) {
	c := simulatedCohort(t, identity(), 4, 10)
	var buf bytes.Buffer
	Summarize(c, 10).Print(&buf)

	out := buf.String()
	if !strings.Contains(out, "undefined (no observations)") {
		t.Errorf("output does not render undefined means:\n%s", out)
	}
	if strings.Contains(out, "NaN") {
		t.Errorf("raw NaN leaked into output:\n%s", out)
	}
}
