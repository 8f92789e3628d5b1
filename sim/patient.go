package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Patient simulates one individual's walk through the health states. Each
// patient owns its random stream (seeded with the patient id) and its state
// monitor; the only shared input is the read-only transition matrix. That
// isolation is what makes patients order-independent: simulating them
// sequentially, shuffled, or concurrently yields identical trajectories.
type Patient struct {
	ID int64

	model    *Model
	stream   *Stream
	monitor  *StateMonitor
	samplers []*Empirical // per-state row samplers, compiled on first visit
}

// NewPatient creates a patient whose stream is seeded with its id.
func NewPatient(id int64, model *Model) *Patient {
	return &Patient{
		ID:       id,
		model:    model,
		stream:   NewStream(id),
		monitor:  NewStateMonitor(model),
		samplers: make([]*Empirical, model.Matrix.NumStates()),
	}
}

// Simulate advances the patient through at most nSteps time steps.
//
// Each step looks up the transition row of the current state, draws one
// uniform, samples the next state, and hands the transition to the monitor.
// The loop stops as soon as the monitor reports absorption: a finished
// patient consumes no further time steps and no further randomness.
//
// A transition row that fails validation aborts this patient with an error
// wrapping ErrInvalidDistribution. Only rows the patient actually visits are
// ever validated.
func (p *Patient) Simulate(nSteps int) error {
	for k := 0; k < nSteps && p.monitor.Alive(); k++ {
		state := p.monitor.CurrentState()
		sampler, err := p.samplerFor(state)
		if err != nil {
			return fmt.Errorf("patient %d at step %d: %w", p.ID, k, err)
		}
		next := sampler.Sample(p.stream.Uniform())
		p.monitor.Update(k, next)
	}
	logrus.Debugf("patient %d: state=%d alive=%v draws=%d",
		p.ID, p.monitor.CurrentState(), p.monitor.Alive(), p.stream.Draws())
	return nil
}

// samplerFor returns the compiled sampler for state's transition row,
// building and caching it on first use. The cache is patient-private, so no
// synchronization is needed when cohorts run patients on several goroutines.
func (p *Patient) samplerFor(state int) (*Empirical, error) {
	if s := p.samplers[state]; s != nil {
		return s, nil
	}
	s, err := NewEmpirical(p.model.Matrix.Row(state))
	if err != nil {
		return nil, fmt.Errorf("transition row %d: %w", state, err)
	}
	p.samplers[state] = s
	return s, nil
}

// Monitor exposes the patient's outcome record for aggregation.
func (p *Patient) Monitor() *StateMonitor {
	return p.monitor
}

// Stream exposes the patient's random stream.
func (p *Patient) Stream() *Stream {
	return p.stream
}
