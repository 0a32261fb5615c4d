package cmd

import (
	"errors"
	"fmt"

	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Command flags need to be global for cobra
var enqueueOutput string

// enqueueCmd queues compile tasks for the worker
//
//nolint:gochecknoglobals // Cobra commands are typically global
var enqueueCmd = &cobra.Command{
	Use:   "enqueue <industry-dir>...",
	Short: "Queue industries for compilation by the worker",
	Long: `Queue a compile task per industry directory. Industries already waiting in the
queue are skipped.

Examples:
  iisim enqueue Sources/Cement Sources/Steel`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnqueue,
}

func init() {
	rootCmd.AddCommand(enqueueCmd)

	enqueueCmd.Flags().StringVar(&enqueueOutput, "output", "", "output directory used by the worker (default is the worker's outputPath)")
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}
	if validationErr := cfg.Redis.Validate(); validationErr != nil {
		return validationErr
	}

	redisOpt, err := cfg.Redis.AsynqOptions()
	if err != nil {
		return err
	}

	queue := tasks.NewQueueManager(redisOpt, cfg.Redis.PrefixQueue(tasks.QueueCompile))
	defer func() {
		if closeErr := queue.Close(); closeErr != nil {
			logger.WithError(closeErr).Error("Failed to close queue manager")
		}
	}()

	out := cmd.OutOrStdout()

	for _, dir := range args {
		err := queue.EnqueueCompile(tasks.CompilePayload{
			IndustryDir: dir,
			OutputDir:   enqueueOutput,
			Trigger:     tasks.TriggerManual,
		})

		switch {
		case err == nil:
			fmt.Fprintf(out, "queued %s\n", dir)
		case errors.Is(err, tasks.ErrTaskAlreadyQueued):
			fmt.Fprintf(out, "already queued %s\n", dir)
		default:
			return fmt.Errorf("failed to enqueue %s: %w", dir, err)
		}
	}

	return nil
}
