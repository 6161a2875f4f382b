package cmd

import (
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/spf13/cobra"
)

var (
	Logger logger.Logger

	SecretsCmd = &cobra.Command{
		Use:   "secrets",
		Short: "Create, update and export organization and repository secrets",
		Long: `Provisions GitHub Actions and Dependabot secrets from a CSV file and
exports an inventory of every secret in an organization.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing secrets command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	addCommonFlags(SecretsCmd.PersistentFlags())

	SecretsCmd.AddCommand(createCmd)
	SecretsCmd.AddCommand(exportCmd)
}

// Helper functions for testing

// GetSecretsCmd returns the SecretsCmd for testing.
func GetSecretsCmd() *cobra.Command {
	return SecretsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	resetCommonFlags(SecretsCmd.PersistentFlags(), ReportCmd.PersistentFlags(), MigrationsCmd.PersistentFlags(), ConfigCmd.PersistentFlags())
	resetCreateCommandState()
	resetExportCommandState()
	resetNetworkCommandState()
	resetUserMappingCommandState()
	resetConfigInitState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
