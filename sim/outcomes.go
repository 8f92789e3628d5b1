package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CohortOutcomes aggregates every patient monitor in a cohort into
// population-level results. It is created empty alongside the cohort and
// populated exactly once, after all patients have finished simulating.
//
// Empty-set policy: a mean over zero observations is undefined and stays
// NaN. Callers that render outcomes (see sim/report) print NaN means as
// "undefined" rather than inventing a number.
type CohortOutcomes struct {
	// SurvivalTimes holds one half-cycle-corrected absorption time per
	// patient that entered the terminal state, in patient creation order.
	// Patients still alive at the horizon contribute nothing.
	SurvivalTimes []float64

	// EventTimes holds one half-cycle-corrected first-event time per patient
	// that developed the event, in patient creation order.
	EventTimes []float64

	// MeanSurvivalTime is the arithmetic mean of SurvivalTimes, NaN while
	// unpopulated or when no patient was absorbed.
	MeanSurvivalTime float64

	// MeanTimeToEvent is the arithmetic mean of EventTimes, NaN while
	// unpopulated or when no patient developed the event.
	MeanTimeToEvent float64

	// Curve is the population survival curve, nil until extraction.
	Curve *SurvivalCurve

	populated bool
}

// NewCohortOutcomes returns an empty outcome set with undefined means.
func NewCohortOutcomes() *CohortOutcomes {
	return &CohortOutcomes{
		MeanSurvivalTime: math.NaN(),
		MeanTimeToEvent:  math.NaN(),
	}
}

// Extract scans the patients in the given order and fills the outcome
// collections, the means, and the survival curve.
//
// Extract must run after every patient has finished and must run exactly
// once; a second call panics, like reusing a finished sync.WaitGroup. The
// scan order is the caller's patient order, which keeps the collections
// deterministic for a deterministic cohort.
func (o *CohortOutcomes) Extract(patients []*Patient) {
	if o.populated {
		panic("sim: CohortOutcomes.Extract called twice")
	}
	o.populated = true

	for _, p := range patients {
		m := p.Monitor()
		if t, ok := m.SurvivalTime(); ok {
			o.SurvivalTimes = append(o.SurvivalTimes, t)
		}
		if m.DevelopedEvent() {
			t, _ := m.TimeToEvent()
			o.EventTimes = append(o.EventTimes, t)
		}
	}

	if len(o.SurvivalTimes) > 0 {
		o.MeanSurvivalTime = stat.Mean(o.SurvivalTimes, nil)
	}
	if len(o.EventTimes) > 0 {
		o.MeanTimeToEvent = stat.Mean(o.EventTimes, nil)
	}
	o.Curve = NewSurvivalCurve(len(patients), o.SurvivalTimes)
}

// Populated reports whether Extract has run.
func (o *CohortOutcomes) Populated() bool {
	return o.populated
}
