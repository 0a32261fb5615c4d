package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/idesignres/iisim/pkg/cache"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/idesignres/iisim/pkg/observability"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

//nolint:gochecknoglobals // Command flags need to be global for cobra
var (
	compileOutput          string
	compileNoVerify        bool
	compileMetricsTextfile string
)

// compileCmd compiles industries into generated artifacts
//
//nolint:gochecknoglobals // Cobra commands are typically global
var compileCmd = &cobra.Command{
	Use:   "compile [industry-dir...]",
	Short: "Compile industries into generated artifacts",
	Long: `Compile the given industry directories, or every industry below the configured
sources directory when none is given. A failing industry is reported and skipped.

Examples:
  # Compile every industry below ./Sources
  iisim compile

  # Compile one industry into a custom directory
  iisim compile Sources/Cement --output build/industries`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&compileOutput, "output", "", "output directory (overrides compiler.outputPath)")
	compileCmd.Flags().BoolVar(&compileNoVerify, "no-verify", false, "skip golden value verification")
	compileCmd.Flags().StringVar(&compileMetricsTextfile, "metrics-textfile", "", "write metrics to this textfile after the run")
}

func runCompile(cmd *cobra.Command, args []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}

	if compileOutput != "" {
		cfg.Compiler.OutputPath = compileOutput
	}
	if compileNoVerify {
		cfg.Compiler.Verify = false
	}
	if compileMetricsTextfile != "" {
		cfg.Compiler.MetricsTextfile = compileMetricsTextfile
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		return validationErr
	}

	c, closeFn, err := newCompiler(cfg, cfg.BuildCache)
	if err != nil {
		return err
	}
	defer closeFn()

	var results []*compiler.Result

	if len(args) == 0 {
		results, err = c.CompileAll(cmd.Context(), cfg.Compiler.SourcesPath)
	} else {
		for _, dir := range args {
			result, compileErr := c.CompileDir(cmd.Context(), dir)
			if compileErr == nil {
				_, compileErr = c.Write(result)
			}
			if compileErr != nil {
				logger.WithError(compileErr).WithField("industry", filepath.Base(dir)).Error("Failed to compile industry")
				err = multierr.Append(err, fmt.Errorf("industry %s: %w", filepath.Base(dir), compileErr))
				continue
			}
			results = append(results, result)
		}
	}

	printResults(cmd.OutOrStdout(), cfg.Compiler.OutputPath, results)

	if cfg.Compiler.MetricsTextfile != "" {
		if writeErr := observability.WriteToTextfile(cfg.Compiler.MetricsTextfile); writeErr != nil {
			logger.WithError(writeErr).Warn("Failed to write metrics textfile")
		}
	}

	return err
}

func printResults(w io.Writer, outputPath string, results []*compiler.Result) {
	for _, result := range results {
		state := "compiled"
		if result.Cached {
			state = "cached"
		}
		fmt.Fprintf(w, "%s: %s (%d processes, %s)\n",
			result.Industry, filepath.Join(outputPath, result.Filename()), result.Processes, state)
	}
}

// newCompiler creates a compiler from the CLI configuration, optionally backed by the
// Redis build cache. The returned function releases the Redis client.
func newCompiler(cfg *CLIConfig, withCache bool) (*compiler.Compiler, func(), error) {
	var (
		opts    []compiler.Option
		closeFn = func() {}
	)

	if withCache {
		redisOpt, err := cfg.Redis.Options()
		if err != nil {
			return nil, nil, err
		}

		client := redis.NewClient(redisOpt)
		opts = append(opts, compiler.WithCache(cache.NewManager(client, cfg.Redis.PrefixKey(""), 0)))
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close Redis client")
			}
		}
	}

	c, err := compiler.New(logger, &cfg.Compiler, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return c, closeFn, nil
}
