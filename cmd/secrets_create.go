package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/ghadmin/internal/secrets"
	"github.com/PolarWolf314/ghadmin/internal/ui"
	"github.com/PolarWolf314/ghadmin/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	createFile   string
	createOrg    string
	createDryRun bool
)

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "CSV file listing the secrets (overrides SHARED_PROPERTIES_FILE)")
	createCmd.Flags().StringVarP(&createOrg, "org", "o", "", "organization that owns the secrets (overrides ORGANIZATION)")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "validate the file and show the calls without contacting GitHub")
}

// resetCreateCommandState resets the create command's global state for testing.
func resetCreateCommandState() {
	createFile = ""
	createOrg = ""
	createDryRun = false
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or update secrets listed in a CSV file",
	Long: `Creates or updates GitHub Actions and Dependabot secrets, one per row of a CSV file.

The file needs the columns:
  SecretLevel     Organization or Repository
  SecretType      Action or Dependabot
  SecretName      name of the secret
  SecretValue     plaintext value, encrypted before it leaves this machine
  SecretAccess    all, private or selected (organization secrets)
  RepositoryName  target repository (repository secrets)
  RepositoryID    ';' separated repositories for selected access

Every row gets a status line. A failing row does not stop the others.

Examples:
  # Provision the secrets listed in secrets.csv
  ghadmin secrets create --org acme --file secrets.csv

  # Check the file without changing anything
  ghadmin secrets create --org acme --file secrets.csv --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create command")
		spinner, cleanup := startSpinner("Provisioning secrets...")
		defer cleanup()

		cfg, err := loadConfig(!createDryRun)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}
		if createFile != "" {
			cfg.SecretsFile = createFile
		}
		if createOrg != "" {
			cfg.Organization = createOrg
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		opts := workflows.ProvisionOptions{Config: cfg, DryRun: createDryRun, Logger: Logger}
		if !createDryRun {
			client, err := newAPIClient(ctx, cfg)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to create GitHub client: %v", err)
			}
			opts.API = client
		}

		result, err := workflows.Provision(ctx, opts)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				spinner.FinalMSG = msg
				return nil
			}
			spinner.FinalMSG = ui.Cross() + " " + err.Error()
			return nil
		}

		if createDryRun {
			spinner.FinalMSG = formatPlan(result)
			return nil
		}
		spinner.FinalMSG = formatResults(result)
		return nil
	},
}

func formatResults(result *workflows.ProvisionResult) string {
	var b strings.Builder
	for _, r := range result.Results {
		mark := ui.Check()
		if r.Status == secrets.Failed {
			mark = ui.Cross()
		}
		b.WriteString(mark + " " + r.Message() + "\n")
	}
	b.WriteString("\n" + ui.Arrow() + " " + result.String())
	return b.String()
}

func formatPlan(result *workflows.ProvisionResult) string {
	var b strings.Builder
	b.WriteString(ui.Info.Sprint("Dry run:") + " no secrets were changed\n\n")
	for _, call := range result.Planned {
		if call.Err != nil {
			b.WriteString(ui.Cross() + " " + secrets.Result{Name: call.Name, Err: call.Err}.Message() + "\n")
			continue
		}
		b.WriteString(ui.Arrow() + " " + call.Method + " " + ui.Path.Sprint(call.Path) + "\n")
	}
	return b.String()
}
