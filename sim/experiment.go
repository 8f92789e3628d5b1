package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Experiment runs one or more cohorts against a shared model, assigning
// cohort ids sequentially from BaseCohortID. Combined with the patient id
// scheme this keeps every patient id, and therefore every stream seed,
// unique across the whole experiment.
type Experiment struct {
	Model        *Model
	BaseCohortID int64
	NumCohorts   int
	Population   int
	Horizon      int
	Workers      int
}

// Run simulates every cohort in id order and returns them. The first cohort
// failure aborts the experiment.
func (e *Experiment) Run() ([]*Cohort, error) {
	if e.NumCohorts <= 0 {
		return nil, fmt.Errorf("experiment needs at least one cohort, got %d", e.NumCohorts)
	}
	if e.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", e.Horizon)
	}

	logrus.Infof("experiment: %d cohort(s) of %d patients, horizon %d steps",
		e.NumCohorts, e.Population, e.Horizon)

	cohorts := make([]*Cohort, 0, e.NumCohorts)
	for i := 0; i < e.NumCohorts; i++ {
		cfg := CohortConfig{
			ID:         e.BaseCohortID + int64(i),
			Population: e.Population,
			Workers:    e.Workers,
		}
		cohort, err := NewCohort(cfg, e.Model)
		if err != nil {
			return nil, err
		}
		if err := cohort.Simulate(e.Horizon); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, cohort)
	}
	return cohorts, nil
}
