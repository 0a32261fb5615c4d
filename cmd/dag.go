package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/idesignres/iisim/pkg/industry"
	"github.com/spf13/cobra"
)

// dagCmd visualizes the process dependency graph of an industry
//
//nolint:gochecknoglobals // Cobra commands are typically global
var dagCmd = &cobra.Command{
	Use:   "dag <industry-dir>",
	Short: "Visualize the process dependency graph of an industry",
	Long:  `Print the processes of an industry grouped by dependency level, or the graph in DOT format.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDAG,
}

func init() {
	rootCmd.AddCommand(dagCmd)

	dagCmd.Flags().Bool("dot", false, "Output in DOT format for graphviz")
}

func runDAG(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()

	if dotFlag, _ := cmd.Flags().GetBool("dot"); dotFlag {
		dot, err := ind.DOT()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dot)
		return nil
	}

	return printLevels(out, ind)
}

func printLevels(out io.Writer, ind *industry.Industry) error {
	queue, err := ind.ExecutionQueue()
	if err != nil {
		return err
	}

	levels, err := ind.Levels()
	if err != nil {
		return err
	}

	maxLevel := 0
	byLevel := make(map[int][]string)
	for _, id := range queue {
		level := levels[id]
		byLevel[level] = append(byLevel[level], id)
		if level > maxLevel {
			maxLevel = level
		}
	}

	fmt.Fprintln(out, "Dependency Graph:")
	fmt.Fprintln(out, "=================")

	for level := 0; level <= maxLevel; level++ {
		ids, exists := byLevel[level]
		if !exists {
			continue
		}

		fmt.Fprintf(out, "\nLevel %d:\n", level)
		for _, id := range ids {
			p, _ := ind.Process(id)
			fmt.Fprintf(out, "  • %s (%s)", id, p.Name())

			if deps := ind.Dependencies(id); len(deps) > 0 {
				fmt.Fprintf(out, "\n    ← depends on: %s", strings.Join(deps, ", "))
			}

			dependents, err := ind.Dependents(id)
			if err != nil {
				return err
			}
			if len(dependents) > 0 {
				fmt.Fprintf(out, "\n    → used by: %s", strings.Join(dependents, ", "))
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out, "\nExecution queue:")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out, strings.Join(queue, " → "))

	return nil
}
