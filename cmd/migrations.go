package cmd

import (
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/spf13/cobra"
)

// MigrationsCmd groups helpers for GitHub migration archives.
var MigrationsCmd = &cobra.Command{
	Use:   "migrations",
	Short: "Work with GitHub migration archives",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing migrations command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addCommonFlags(MigrationsCmd.PersistentFlags())

	MigrationsCmd.AddCommand(userMappingCmd)
}

// GetMigrationsCmd returns the MigrationsCmd for testing.
func GetMigrationsCmd() *cobra.Command {
	return MigrationsCmd
}
