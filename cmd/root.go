package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cohort-sim/cohort-sim/sim"
	"github.com/cohort-sim/cohort-sim/sim/model"
	"github.com/cohort-sim/cohort-sim/sim/report"
)

var (
	// CLI flags for the run subcommand
	modelPath   string // Path to the disease-model YAML file
	logLevel    string // Log verbosity level
	cohortID    int64  // Id of the first cohort (anchors patient seeds)
	population  int    // Patients per cohort
	numCohorts  int    // Number of cohorts to simulate
	horizon     int    // Simulation length in time steps
	workers     int    // Patient simulation goroutines per cohort
	curveOut    string // Path for the survival-curve CSV (optional)
	outcomesOut string // Path for the raw outcomes YAML (optional)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cohort-sim",
	Short: "Discrete-time Markov cohort simulator for disease progression",
}

// runParams are the resolved settings of one run: CLI flags merged with the
// model file's defaults.
type runParams struct {
	CohortID   int64
	Population int
	NumCohorts int
	Horizon    int
	Workers    int
}

// resolveRunParams merges flags with model-file defaults. An explicitly set
// flag wins over the file; population and horizon must end up positive from
// one source or the other.
func resolveRunParams(cmd *cobra.Command, spec *model.Spec) (runParams, error) {
	p := runParams{
		CohortID:   spec.Cohort.ID,
		Population: spec.Cohort.Population,
		NumCohorts: numCohorts,
		Horizon:    spec.Horizon,
		Workers:    spec.Cohort.Workers,
	}
	if cmd.Flags().Changed("cohort-id") {
		p.CohortID = cohortID
	}
	if cmd.Flags().Changed("population") {
		p.Population = population
	}
	if cmd.Flags().Changed("horizon") {
		p.Horizon = horizon
	}
	if cmd.Flags().Changed("workers") {
		p.Workers = workers
	}

	if p.Population <= 0 {
		return p, fmt.Errorf("population must be positive (set --population or cohort.population in the model file), got %d", p.Population)
	}
	if p.Horizon <= 0 {
		return p, fmt.Errorf("horizon must be positive (set --horizon or horizon in the model file), got %d", p.Horizon)
	}
	if p.NumCohorts <= 0 {
		return p, fmt.Errorf("--cohorts must be positive, got %d", p.NumCohorts)
	}
	return p, nil
}

// curvePath returns the CSV path for one cohort's survival curve. With a
// single cohort the base path is used as given; with several, the cohort id
// is appended before the extension.
func curvePath(base string, id int64, multi bool) string {
	if !multi {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), id, ext)
}

// runCmd simulates one or more cohorts from a disease-model file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate patient cohorts over a disease model",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := model.Load(modelPath)
		if err != nil {
			logrus.Fatalf("Failed to load model: %v", err)
		}
		m, table, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Invalid model %s: %v", modelPath, err)
		}

		params, err := resolveRunParams(cmd, spec)
		if err != nil {
			logrus.Fatalf("Invalid run parameters: %v", err)
		}

		logrus.Infof("Starting model %q: states=%v initial=%q event=%q terminal=%q",
			spec.Name, table.Names(), table.Name(m.Initial), table.Name(m.Event), table.Name(m.Terminal))

		startTime := time.Now()

		experiment := &sim.Experiment{
			Model:        m,
			BaseCohortID: params.CohortID,
			NumCohorts:   params.NumCohorts,
			Population:   params.Population,
			Horizon:      params.Horizon,
			Workers:      params.Workers,
		}
		cohorts, err := experiment.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		for _, c := range cohorts {
			report.Summarize(c, params.Horizon).Print(os.Stdout)
		}

		if curveOut != "" {
			multi := len(cohorts) > 1
			for _, c := range cohorts {
				path := curvePath(curveOut, c.ID, multi)
				if err := report.SaveCurveCSV(path, c.Outcomes.Curve); err != nil {
					logrus.Fatalf("Failed to write survival curve: %v", err)
				}
				logrus.Infof("Survival curve written to %s", path)
			}
		}
		if outcomesOut != "" {
			if err := report.SaveOutcomesYAML(outcomesOut, cohorts); err != nil {
				logrus.Fatalf("Failed to write outcomes: %v", err)
			}
			logrus.Infof("Outcomes written to %s", outcomesOut)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&modelPath, "model", "", "Path to the disease-model YAML file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Cohort configs; zero values defer to the model file's defaults
	runCmd.Flags().Int64Var(&cohortID, "cohort-id", 0, "Id of the first cohort (anchors patient random seeds)")
	runCmd.Flags().IntVar(&population, "population", 0, "Patients per cohort (overrides model file)")
	runCmd.Flags().IntVar(&numCohorts, "cohorts", 1, "Number of cohorts to simulate")
	runCmd.Flags().IntVar(&horizon, "horizon", 0, "Simulation length in time steps (overrides model file)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Goroutines simulating patients per cohort (<= 1 is sequential)")

	// Output files
	runCmd.Flags().StringVar(&curveOut, "curve-out", "", "Write the survival curve CSV to this path")
	runCmd.Flags().StringVar(&outcomesOut, "out", "", "Write the raw outcomes YAML to this path")

	_ = runCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(runCmd)
}
