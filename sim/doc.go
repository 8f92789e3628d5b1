// Package sim provides the core cohort state-transition engine: independent
// patients walking a shared discrete-time Markov transition matrix, and the
// aggregation of their recorded outcomes into population statistics.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: one patient's time-stepped loop over the transition matrix
//   - monitor.go: the per-patient outcome record (absorption, first event,
//     half-cycle-corrected times)
//   - cohort.go: cohort construction, the patient id scheme, worker fan-out,
//     and the completion barrier before aggregation
//
// Supporting pieces:
//   - rng.go: per-patient seeded uniform streams (seed = patient id)
//   - empirical.go: inverse-CDF sampling of one transition row
//   - outcomes.go, curve.go: cohort aggregation and the survival curve
//   - experiment.go: multi-cohort runs over one shared model
//
// Model files (state labels, matrix values, run defaults) are loaded and
// validated by sim/model; human-readable summaries and file output live in
// sim/report.
//
// # Determinism
//
// A patient's trajectory is a pure function of its id and the transition
// matrix: the id seeds the patient's private random stream, and nothing else
// feeds the walk. Cohorts therefore reproduce bit-for-bit identical outcome
// collections for identical (cohort id, population, matrix, horizon),
// whether patients run sequentially or on a worker pool.
package sim
