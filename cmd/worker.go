package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/idesignres/iisim/pkg/worker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	workerCfgFile string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the iisim worker service",
	Long: `The worker service compiles industries from the Redis task queue and, when
enabled, enqueues a rebuild of every industry on a cron schedule.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().StringVar(&workerCfgFile, "config", "worker.yaml", "config file (default is worker.yaml)")
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	config, err := worker.LoadConfig(workerCfgFile)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(config.Logging)
	if err != nil {
		return fmt.Errorf("invalid logging level %q: %w", config.Logging, err)
	}

	log := logrus.New()
	log.SetFormatter(logger.Formatter)
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"config":  workerCfgFile,
		"sources": config.Compiler.SourcesPath,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := worker.NewApplication(config, log)
	if err := app.Start(ctx); err != nil {
		return multierr.Combine(err, app.Stop())
	}

	<-ctx.Done()
	log.Info("Received shutdown signal")

	return app.Stop()
}
