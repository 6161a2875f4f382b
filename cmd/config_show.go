package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/ghadmin/internal/ui"

	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Prints the settings a command would run with after reading ghadmin.toml,
.env, the environment and flags. The API token is only reported as set or
not set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			if msg := configErrorMessage(err); msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load configuration: %v", err)
		}

		token := ui.Muted.Sprint("not set")
		if cfg.Token != "" {
			token = ui.Success.Sprint("set")
		}

		rows := [][2]string{
			{"API token", token},
			{"REST API", cfg.RESTBaseURL()},
			{"GraphQL API", cfg.GraphQLURL()},
			{"Organization", cfg.Organization},
			{"Enterprise", cfg.Enterprise},
			{"Secrets file", cfg.SecretsFile},
			{"Archive", cfg.ArchivePath},
			{"Output directory", cfg.OutputDir},
			{"Audit log", cfg.AuditLog},
		}

		var b strings.Builder
		for _, row := range rows {
			value := row[1]
			if value == "" {
				value = ui.Muted.Sprint("not set")
			}
			fmt.Fprintf(&b, "%-17s %s\n", row[0]+":", value)
		}
		fmt.Fprint(cmd.OutOrStdout(), b.String())
		return nil
	},
}
