package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cohort-sim/cohort-sim/sim"
)

// curveColumns is the CSV header of a survival-curve file.
var curveColumns = []string{"time", "delta", "alive"}

// WriteCurveCSV writes the survival curve as CSV: one row per decrement
// event plus a leading row pinning the starting level at time 0. The alive
// column is the running count after applying the row's delta.
func WriteCurveCSV(w io.Writer, curve *sim.SurvivalCurve) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(curveColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	alive := curve.InitialSize
	start := []string{"0", "0", strconv.Itoa(alive)}
	if err := writer.Write(start); err != nil {
		return fmt.Errorf("writing curve start row: %w", err)
	}

	for i, ev := range curve.Events {
		alive += ev.Delta
		row := []string{
			strconv.FormatFloat(ev.Time, 'f', -1, 64),
			strconv.Itoa(ev.Delta),
			strconv.Itoa(alive),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing curve row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCurveCSV writes the survival curve to a file.
func SaveCurveCSV(path string, curve *sim.SurvivalCurve) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating curve file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteCurveCSV(file, curve)
}

// CohortResult is the serializable form of one cohort's outcomes. Undefined
// means serialize as null rather than NaN, which YAML has no portable
// encoding for.
type CohortResult struct {
	CohortID         int64       `yaml:"cohort_id"`
	Population       int         `yaml:"population"`
	Deaths           int         `yaml:"deaths"`
	Events           int         `yaml:"events"`
	MeanSurvivalTime *float64    `yaml:"mean_survival_time"`
	MeanTimeToEvent  *float64    `yaml:"mean_time_to_event"`
	SurvivalTimes    []float64   `yaml:"survival_times"`
	EventTimes       []float64   `yaml:"event_times"`
	SurvivalCurve    CurveResult `yaml:"survival_curve"`
}

// CurveResult mirrors sim.SurvivalCurve for serialization.
type CurveResult struct {
	InitialSize int               `yaml:"initial_size"`
	Events      []CurveEventEntry `yaml:"events"`
}

// CurveEventEntry is one serialized curve decrement.
type CurveEventEntry struct {
	Time  float64 `yaml:"time"`
	Delta int     `yaml:"delta"`
}

// NewCohortResult converts a simulated cohort into its serializable form.
func NewCohortResult(c *sim.Cohort) CohortResult {
	o := c.Outcomes
	r := CohortResult{
		CohortID:         c.ID,
		Population:       len(c.Patients),
		Deaths:           len(o.SurvivalTimes),
		Events:           len(o.EventTimes),
		MeanSurvivalTime: definedMean(o.MeanSurvivalTime),
		MeanTimeToEvent:  definedMean(o.MeanTimeToEvent),
		SurvivalTimes:    o.SurvivalTimes,
		EventTimes:       o.EventTimes,
	}
	if o.Curve != nil {
		r.SurvivalCurve.InitialSize = o.Curve.InitialSize
		for _, ev := range o.Curve.Events {
			r.SurvivalCurve.Events = append(r.SurvivalCurve.Events, CurveEventEntry{Time: ev.Time, Delta: ev.Delta})
		}
	}
	return r
}

// definedMean maps the NaN sentinel to nil so it serializes as null.
func definedMean(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// outcomesDocument is the top-level YAML document written by
// WriteOutcomesYAML.
type outcomesDocument struct {
	Cohorts []CohortResult `yaml:"cohorts"`
}

// WriteOutcomesYAML writes the raw outcomes of every cohort as one YAML
// document.
func WriteOutcomesYAML(w io.Writer, cohorts []*sim.Cohort) error {
	doc := outcomesDocument{}
	for _, c := range cohorts {
		doc.Cohorts = append(doc.Cohorts, NewCohortResult(c))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling outcomes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing outcomes: %w", err)
	}
	return nil
}

// SaveOutcomesYAML writes the outcomes document to a file.
func SaveOutcomesYAML(path string, cohorts []*sim.Cohort) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating outcomes file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteOutcomesYAML(file, cohorts)
}
