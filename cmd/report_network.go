package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ghadmin/internal/ui"
	"github.com/PolarWolf314/ghadmin/internal/workflows"

	"github.com/spf13/cobra"
)

var networkEnterprise string

func init() {
	networkCmd.Flags().StringVarP(&networkEnterprise, "enterprise", "e", "", "enterprise slug (overrides ENTERPRISE)")
}

// resetNetworkCommandState resets the network command's global state for testing.
func resetNetworkCommandState() {
	networkEnterprise = ""
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Report repositories, branches and forks of every organization in an enterprise",
	Long: `Walks every organization of an enterprise and records, per repository,
the author of the last commit, the number of branches, and its forks
together with their own forks.

The token needs the read:enterprise, read:org and repo scopes.
The report is named {timestamp}-{enterprise}-enterprise-network-report.json.

Examples:
  ghadmin report network --enterprise acme-corp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting network report command")
		spinner, cleanup := startSpinner("Building enterprise network report...")
		defer cleanup()

		cfg, err := loadConfig(true)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}
		if networkEnterprise != "" {
			cfg.Enterprise = networkEnterprise
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client, err := newAPIClient(ctx, cfg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create GitHub client: %v", err)
		}

		result, err := workflows.NetworkReport(ctx, workflows.NetworkReportOptions{Config: cfg, Source: client, Logger: Logger})
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to build network report: %v", err)
		}

		spinner.FinalMSG = ui.Check() + fmt.Sprintf(" Reported %d repositories in %d organization(s) to ", result.RepositoryCount, result.OrganizationCount) +
			ui.Path.Sprint(result.OutputPath)
		return nil
	},
}
