package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ghadmin/internal/ui"
	"github.com/PolarWolf314/ghadmin/internal/workflows"

	"github.com/spf13/cobra"
)

var userMappingArchive string

func init() {
	userMappingCmd.Flags().StringVarP(&userMappingArchive, "archive", "a", "", "path to the .tar.gz migration archive (overrides ARCHIVE_PATH)")
}

// resetUserMappingCommandState resets the user-mapping command's global state for testing.
func resetUserMappingCommandState() {
	userMappingArchive = ""
}

var userMappingCmd = &cobra.Command{
	Use:   "user-mapping",
	Short: "Extract the users of a migration archive to user-mapping.csv",
	Long: `Reads every users_*.json file of a migration archive and writes
user-mapping.csv with the columns login, name, email and url. The email
is the user's primary address. No GitHub API call is made.

Examples:
  ghadmin migrations user-mapping --archive migration_archive.tar.gz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting user-mapping command")
		spinner, cleanup := startSpinner("Extracting users...")
		defer cleanup()

		cfg, err := loadConfig(false)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}
		if userMappingArchive != "" {
			cfg.ArchivePath = userMappingArchive
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := workflows.UserMapping(ctx, workflows.UserMappingOptions{Config: cfg, Logger: Logger})
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			spinner.FinalMSG = ui.Cross() + " " + err.Error()
			return nil
		}

		spinner.FinalMSG = ui.Check() + fmt.Sprintf(" Wrote %d user(s) to ", result.UserCount) + ui.Path.Sprint(result.OutputPath)
		return nil
	},
}
