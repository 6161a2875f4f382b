package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ghadmin/internal/ui"
	"github.com/PolarWolf314/ghadmin/internal/workflows"

	"github.com/spf13/cobra"
)

var exportOrg string

func init() {
	exportCmd.Flags().StringVarP(&exportOrg, "org", "o", "", "organization to report on (overrides ORGANIZATION)")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportOrg = ""
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every secret of an organization to a CSV report",
	Long: `Writes one CSV row per secret and repository that can read it, covering
organization and repository secrets of Actions, Dependabot and Codespaces.
Secret values are never read.

The report is named {timestamp}-{org}-organization-secrets-report.csv.

Examples:
  # Export the secrets inventory of acme
  ghadmin secrets export --org acme

  # Write the report somewhere else
  ghadmin secrets export --org acme --output-dir reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting secrets inventory...")
		defer cleanup()

		cfg, err := loadConfig(true)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}
		if exportOrg != "" {
			cfg.Organization = exportOrg
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client, err := newAPIClient(ctx, cfg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create GitHub client: %v", err)
		}

		result, err := workflows.ExportSecrets(ctx, workflows.ExportSecretsOptions{Config: cfg, Source: client, Logger: Logger})
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to export secrets: %v", err)
		}

		spinner.FinalMSG = ui.Check() + " Exported " + fmt.Sprint(result.RowCount) + " secret row(s) to " + ui.Path.Sprint(result.OutputPath)
		return nil
	},
}
