// Package model loads and validates disease-model files: the health-state
// enumeration with its distinguished initial/event/terminal states, the
// transition matrix, and cohort run defaults. The simulation engine works on
// dense state indices; this package owns the label-to-index mapping.
package model

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cohort-sim/cohort-sim/sim"
)

// Spec is the top-level disease-model configuration.
// Loaded from YAML via Load(path).
type Spec struct {
	// Name labels the model in logs and reports.
	Name string `yaml:"name"`

	// States enumerates the health-state labels. Order defines the dense
	// index of each state, and rows of Transitions follow the same order.
	States []string `yaml:"states"`

	// Initial, Event and Terminal name the distinguished states by label.
	Initial  string `yaml:"initial"`
	Event    string `yaml:"event"`
	Terminal string `yaml:"terminal"`

	// Transitions holds one probability row per state, in States order.
	Transitions [][]float64 `yaml:"transitions"`

	// Horizon is the default number of time steps per run. Optional;
	// the CLI requires a positive horizon from either the file or a flag.
	Horizon int `yaml:"horizon,omitempty"`

	// Cohort holds default cohort parameters. Optional.
	Cohort CohortDefaults `yaml:"cohort,omitempty"`
}

// CohortDefaults carries optional per-file cohort run defaults.
type CohortDefaults struct {
	ID         int64 `yaml:"id,omitempty"`
	Population int   `yaml:"population,omitempty"`
	Workers    int   `yaml:"workers,omitempty"`
}

// Load reads and parses a YAML disease-model file. Parsing is strict:
// unknown fields are an error, so typos surface instead of silently
// defaulting. Call Validate (or Build, which validates) before simulating.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid: at least two
// unique, non-empty state labels; resolvable and distinct special states; a
// square transition matrix whose every row is a probability distribution;
// and non-negative run defaults.
//
// Unlike the engine, which validates rows lazily as patients visit them,
// the config layer checks every row up front: a model file should be
// rejected whole, not fail halfway into a run.
func (s *Spec) Validate() error {
	if len(s.States) < 2 {
		return fmt.Errorf("model needs at least 2 states, got %d", len(s.States))
	}
	table, err := NewStateTable(s.States)
	if err != nil {
		return err
	}

	if _, ok := table.Index(s.Initial); !ok {
		return fmt.Errorf("initial state %q not in states list", s.Initial)
	}
	if _, ok := table.Index(s.Event); !ok {
		return fmt.Errorf("event state %q not in states list", s.Event)
	}
	if _, ok := table.Index(s.Terminal); !ok {
		return fmt.Errorf("terminal state %q not in states list", s.Terminal)
	}
	if s.Terminal == s.Event {
		return fmt.Errorf("terminal and event must be distinct states, both are %q", s.Terminal)
	}

	if len(s.Transitions) != len(s.States) {
		return fmt.Errorf("transitions has %d rows, want one per state (%d)", len(s.Transitions), len(s.States))
	}
	for i, row := range s.Transitions {
		if len(row) != len(s.States) {
			return fmt.Errorf("state %q: row has %d entries, want %d", s.States[i], len(row), len(s.States))
		}
		if _, err := sim.NewEmpirical(row); err != nil {
			return fmt.Errorf("state %q: %w", s.States[i], err)
		}
	}

	if s.Horizon < 0 {
		return fmt.Errorf("horizon must not be negative, got %d", s.Horizon)
	}
	if s.Cohort.Population < 0 {
		return fmt.Errorf("cohort population must not be negative, got %d", s.Cohort.Population)
	}
	if s.Cohort.Workers < 0 {
		return fmt.Errorf("cohort workers must not be negative, got %d", s.Cohort.Workers)
	}
	return nil
}

// Build validates the spec and constructs the engine model plus the state
// table for mapping labels to indices and back. The transition matrix is
// copied: a cohort holds its matrix read-only for its whole lifetime, and a
// caller editing the Spec afterwards must not reach into a running cohort.
func (s *Spec) Build() (*sim.Model, *StateTable, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	table, err := NewStateTable(s.States)
	if err != nil {
		return nil, nil, err
	}

	matrix := make(sim.TransitionMatrix, len(s.Transitions))
	for i, row := range s.Transitions {
		matrix[i] = append([]float64(nil), row...)
	}

	initial, _ := table.Index(s.Initial)
	event, _ := table.Index(s.Event)
	terminal, _ := table.Index(s.Terminal)

	m := &sim.Model{
		Matrix:   matrix,
		Terminal: terminal,
		Event:    event,
		Initial:  initial,
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	return m, table, nil
}
