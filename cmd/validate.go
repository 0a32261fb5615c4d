package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/idesignres/iisim/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// validateCmd checks industries without writing artifacts
//
//nolint:gochecknoglobals // Cobra commands are typically global
var validateCmd = &cobra.Command{
	Use:   "validate [industry-dir...]",
	Short: "Validate industries without writing artifacts",
	Long: `Run the full compilation of the given industries, or of every industry below
the configured sources directory: schema validation, range checks, unit consistency,
dependency ordering, golden value verification and template rendering.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}
	cfg.Compiler.Verify = true

	if validationErr := cfg.Validate(); validationErr != nil {
		return validationErr
	}

	c, closeFn, err := newCompiler(cfg, false)
	if err != nil {
		return err
	}
	defer closeFn()

	dirs := args
	if len(dirs) == 0 {
		dirs, err = models.NewDiscovery(cfg.Compiler.SourcesPath).Industries()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	var errs error
	for _, dir := range dirs {
		name := filepath.Base(dir)

		if _, compileErr := c.CompileDir(cmd.Context(), dir); compileErr != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", name, compileErr)
			errs = multierr.Append(errs, fmt.Errorf("industry %s: %w", name, compileErr))
			continue
		}

		fmt.Fprintf(out, "✓ %s\n", name)
	}

	if errs != nil {
		return fmt.Errorf("%d of %d industries failed validation: %w", len(multierr.Errors(errs)), len(dirs), errs)
	}

	return nil
}
