package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cohort-sim/cohort-sim/sim/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate [model.yaml]",
	Short: "Check a disease-model file without simulating",
	Long:  "Load a disease-model YAML file, run full validation (state labels, special states, every transition row), and print the resolved model.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		spec, err := model.Load(path)
		if err != nil {
			logrus.Fatalf("Failed to load %s: %v", path, err)
		}
		m, table, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Model %s is invalid: %v", path, err)
		}

		fmt.Printf("model %q: %d states, %d-step default horizon\n", spec.Name, table.Len(), spec.Horizon)
		for i := 0; i < table.Len(); i++ {
			marker := ""
			switch i {
			case m.Initial:
				marker = " (initial)"
			case m.Event:
				marker = " (event)"
			case m.Terminal:
				marker = " (terminal)"
			}
			fmt.Printf("  [%d] %-20s%s  %v\n", i, table.Name(i), marker, m.Matrix.Row(i))
		}
		fmt.Println("OK")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
