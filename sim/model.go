package sim

import (
	"fmt"
)

// TransitionMatrix holds one probability row per health state: row i is the
// distribution of the next state given current state i. States are dense
// indices 0..K-1; label-to-index mapping belongs to the configuration layer.
//
// The matrix is shared read-only by every patient in a cohort and must not
// be mutated once a cohort has been built over it.
type TransitionMatrix [][]float64

// NumStates returns K, the number of health states.
func (m TransitionMatrix) NumStates() int {
	return len(m)
}

// Row returns the transition distribution out of state i.
func (m TransitionMatrix) Row(i int) []float64 {
	return m[i]
}

// Model bundles the shared transition matrix with the distinguished state
// indices the engine needs: the absorbing Terminal state, the Event state
// whose first entry is tracked per patient, and the Initial state every
// patient starts in.
type Model struct {
	Matrix   TransitionMatrix
	Terminal int
	Event    int
	Initial  int
}

// Validate checks the model's shape: a square matrix over at least two
// states, in-range special indices, and Terminal distinct from Event.
//
// Row contents are deliberately not checked here. Matrix values are external
// configuration, and a bad row surfaces as ErrInvalidDistribution when a
// patient first visits its state (see Patient.Simulate); rows no patient
// ever reaches are never validated.
func (m *Model) Validate() error {
	k := m.Matrix.NumStates()
	if k < 2 {
		return fmt.Errorf("model needs at least 2 states, got %d", k)
	}
	for i, row := range m.Matrix {
		if len(row) != k {
			return fmt.Errorf("transition row %d has %d entries, want %d", i, len(row), k)
		}
	}
	special := []struct {
		name string
		idx  int
	}{
		{"terminal", m.Terminal},
		{"event", m.Event},
		{"initial", m.Initial},
	}
	for _, s := range special {
		if s.idx < 0 || s.idx >= k {
			return fmt.Errorf("%s state index %d out of range [0, %d)", s.name, s.idx, k)
		}
	}
	if m.Terminal == m.Event {
		return fmt.Errorf("terminal and event states must differ, both are %d", m.Terminal)
	}
	return nil
}
