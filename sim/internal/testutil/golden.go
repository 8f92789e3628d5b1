// Package testutil provides shared test infrastructure for the cohort
// simulator: the golden scenario dataset types and assertion helpers used by
// the sim package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one end-to-end cohort run with its expected outcomes.
// Scenario matrices use only 0/1 probabilities, so the expected values hold
// for every random draw and can be verified by hand.
type GoldenScenario struct {
	Name        string      `json:"name"`
	Initial     int         `json:"initial"`
	Event       int         `json:"event"`
	Terminal    int         `json:"terminal"`
	Transitions [][]float64 `json:"transitions"`

	CohortID   int64 `json:"cohort_id"`
	Population int   `json:"population"`
	Workers    int   `json:"workers"`
	Horizon    int   `json:"horizon"`

	Expected GoldenOutcomes `json:"expected"`
}

// GoldenOutcomes holds the expected aggregate results of a scenario.
// Nil means encode "undefined": no patient contributed an observation.
type GoldenOutcomes struct {
	Deaths   int `json:"deaths"`
	Events   int `json:"events"`
	Censored int `json:"censored"`

	MeanSurvivalTime *float64 `json:"mean_survival_time"`
	MeanTimeToEvent  *float64 `json:"mean_time_to_event"`

	CurveFinalSize int `json:"curve_final_size"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
