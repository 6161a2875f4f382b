package cmd

import (
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/spf13/cobra"
)

// ReportCmd groups the read-only enterprise reports.
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports about an enterprise",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing report command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addCommonFlags(ReportCmd.PersistentFlags())

	ReportCmd.AddCommand(networkCmd)
}

// GetReportCmd returns the ReportCmd for testing.
func GetReportCmd() *cobra.Command {
	return ReportCmd
}
