package sim

import (
	"sort"
)

// CurveEvent is one decrement on the survival curve: at Time, the number of
// living patients drops by one. Delta is always -1; two patients absorbed at
// the same time stamp stay two separate events rather than being merged.
type CurveEvent struct {
	Time  float64
	Delta int
}

// SurvivalCurve describes the count of not-yet-absorbed patients over time
// as an initial population size plus an ascending list of decrement events.
// The curve is data, not a drawing; rendering is the consumer's business.
type SurvivalCurve struct {
	InitialSize int
	Events      []CurveEvent
}

// NewSurvivalCurve builds the event list from recorded absorption times. The
// input is copied before sorting, so the caller's collection keeps its
// patient order.
func NewSurvivalCurve(initialSize int, survivalTimes []float64) *SurvivalCurve {
	times := make([]float64, len(survivalTimes))
	copy(times, survivalTimes)
	sort.Float64s(times)

	events := make([]CurveEvent, len(times))
	for i, t := range times {
		events[i] = CurveEvent{Time: t, Delta: -1}
	}
	return &SurvivalCurve{
		InitialSize: initialSize,
		Events:      events,
	}
}

// AliveAt evaluates the curve at time t: the initial size minus every
// decrement stamped at or before t. The earliest possible stamp is 0.5, so
// AliveAt(0) is always the initial size.
func (sc *SurvivalCurve) AliveAt(t float64) int {
	n := sort.Search(len(sc.Events), func(i int) bool { return sc.Events[i].Time > t })
	return sc.InitialSize - n
}

// FinalSize returns the count of patients still alive after the last event.
func (sc *SurvivalCurve) FinalSize() int {
	return sc.InitialSize - len(sc.Events)
}
