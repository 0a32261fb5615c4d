package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Command flags need to be global for cobra
var evaluateOutcome float64

// evaluateCmd evaluates an industry for one outcome value
//
//nolint:gochecknoglobals // Cobra commands are typically global
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <industry-dir>",
	Short: "Evaluate every value of an industry for one outcome",
	Long: `Evaluate the constants, demands and process outputs of an industry for the given
outcome, the same way the generated class computes them.

Examples:
  iisim evaluate Sources/Cement --outcome 100`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().Float64Var(&evaluateOutcome, "outcome", 0, "outcome value to evaluate")
	_ = evaluateCmd.MarkFlagRequired("outcome")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return validationErr
	}

	c, closeFn, err := newCompiler(cfg, false)
	if err != nil {
		return err
	}
	defer closeFn()

	ind, err := c.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	values, err := ind.Evaluate(evaluateOutcome)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%g\n", name, values[name])
	}

	return w.Flush()
}
