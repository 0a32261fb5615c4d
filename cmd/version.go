package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/idesignres/iisim/cmd.Release=..."
//
//nolint:gochecknoglobals // build-time variables
var (
	Release   = "dev"
	GitCommit = "none"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var versionShort bool

//nolint:gochecknoglobals // Cobra commands are typically global
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the iisim build information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()

		if versionShort {
			fmt.Fprintln(out, Release)
			return
		}

		fmt.Fprintf(out, "iisim %s (commit %s)\n", Release, GitCommit)
		fmt.Fprintf(out, "built with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the release")
	rootCmd.AddCommand(versionCmd)
}
