package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// CohortConfig groups the parameters of one cohort.
type CohortConfig struct {
	// ID is the cohort id. It anchors the patient id scheme, so two cohorts
	// with different ids share no patient seeds.
	ID int64

	// Population is the number of patients. Must be positive.
	Population int

	// Workers is the number of goroutines simulating patients. Values <= 1
	// run the cohort sequentially. Results are identical either way.
	Workers int
}

// Cohort owns an ordered collection of patients plus the outcomes extracted
// from them after simulation. Patient order is creation order; aggregation
// scans it stably, so recorded outcome collections line up with patient ids.
type Cohort struct {
	ID       int64
	Patients []*Patient
	Outcomes *CohortOutcomes

	workers   int
	simulated bool
}

// NewCohort validates the model and creates cfg.Population patients over it.
// Patient ids follow cohortID*Population + localIndex: unique within the
// cohort, and unique across cohorts that share a population size. The id is
// also the patient's stream seed, so the whole cohort is reproducible from
// (cohort id, population, matrix, horizon) alone.
func NewCohort(cfg CohortConfig, model *Model) (*Cohort, error) {
	if cfg.Population <= 0 {
		return nil, fmt.Errorf("cohort %d: population must be positive, got %d", cfg.ID, cfg.Population)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("cohort %d: %w", cfg.ID, err)
	}

	c := &Cohort{
		ID:       cfg.ID,
		Patients: make([]*Patient, 0, cfg.Population),
		Outcomes: NewCohortOutcomes(),
		workers:  cfg.Workers,
	}
	for i := 0; i < cfg.Population; i++ {
		id := cfg.ID*int64(cfg.Population) + int64(i)
		c.Patients = append(c.Patients, NewPatient(id, model))
	}
	return c, nil
}

// Simulate runs every patient over nSteps time steps, waits for all of them
// to finish, and then extracts outcomes exactly once.
//
// Patients are independent, so the cohort may fan them out over a worker
// pool; the completion barrier before aggregation is the only
// synchronization point. If any patient fails row validation, the joined
// errors are returned and outcomes stay unpopulated. A cohort simulates at
// most once; a second call is an error.
func (c *Cohort) Simulate(nSteps int) error {
	if c.simulated {
		return fmt.Errorf("cohort %d: already simulated", c.ID)
	}
	c.simulated = true

	logrus.Infof("cohort %d: simulating %d patients over %d steps (workers=%d)",
		c.ID, len(c.Patients), nSteps, c.workers)

	var errs []error
	if c.workers <= 1 {
		for _, p := range c.Patients {
			if err := p.Simulate(nSteps); err != nil {
				errs = append(errs, err)
			}
		}
	} else {
		errs = c.simulateParallel(nSteps)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("cohort %d: %w", c.ID, err)
	}

	c.Outcomes.Extract(c.Patients)
	logrus.Infof("cohort %d: %d absorbed, %d developed the event, %d censored",
		c.ID, len(c.Outcomes.SurvivalTimes), len(c.Outcomes.EventTimes),
		len(c.Patients)-len(c.Outcomes.SurvivalTimes))
	return nil
}

// simulateParallel fans patient indexes out to a fixed pool of workers and
// waits for the pool to drain. Each patient's error lands in its own slot of
// perPatient, so workers never contend on shared state and the error order
// stays the stable patient order.
func (c *Cohort) simulateParallel(nSteps int) []error {
	perPatient := make([]error, len(c.Patients))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				perPatient[i] = c.Patients[i].Simulate(nSteps)
			}
		}()
	}
	for i := range c.Patients {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	var errs []error
	for _, err := range perPatient {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
