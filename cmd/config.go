package cmd

import (
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ghadmin configuration file",
	Long: `Provides commands for writing and inspecting ghadmin.toml.

The API token is never stored in the file. Provide it with API_TOKEN in
the environment or in a .env file.

Examples:
  # Write ghadmin.toml for the acme organization
  ghadmin config init --organization acme --enterprise acme-corp

  # Show the configuration every command would use
  ghadmin config show`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing config command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addCommonFlags(ConfigCmd.PersistentFlags())

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
