// Package cmd contains the iisim command line
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultCLIConfig = "./config.yaml"

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile   string
	logLevel  string
	logFormat string
	logger    = logrus.New()
)

//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "iisim",
	Short: "Compile industry process documents into a single simulation model",
	Long: `iisim compiles the YAML process documents of an industry into a single
generated Python class. Processes are ordered by their dependencies, units are
checked across every process boundary and the golden test values of every
document are verified before the artifact is written.`,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", defaultCLIConfig, "CLI config file")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

func setupLogging() {
	switch logFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
