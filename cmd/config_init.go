package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/ghadmin/internal/configs"
	"github.com/PolarWolf314/ghadmin/internal/ui"

	"github.com/spf13/cobra"
)

var (
	configInitOrganization string
	configInitEnterprise   string
	configInitSecretsFile  string
	configInitArchivePath  string
	configInitForce        bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitOrganization, "organization", "", "default organization")
	configInitCmd.Flags().StringVar(&configInitEnterprise, "enterprise", "", "default enterprise slug")
	configInitCmd.Flags().StringVar(&configInitSecretsFile, "secrets-file", "", "default secrets CSV for 'secrets create'")
	configInitCmd.Flags().StringVar(&configInitArchivePath, "archive-path", "", "default migration archive for 'migrations user-mapping'")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitOrganization = ""
	configInitEnterprise = ""
	configInitSecretsFile = ""
	configInitArchivePath = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a ghadmin.toml with default settings",
	Long: `Writes the given settings to ghadmin.toml, or to the file named by --config.
Global flags such as --hostname, --output-dir and --audit-log are saved too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			path = configs.DefaultConfigFile
		}
		Logger.Debugf("Writing configuration to %s", path)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Cross()+" "+ui.Path.Sprint(path)+" already exists\n"+
				ui.Arrow()+" Run "+ui.Code.Sprint("ghadmin config init --force")+" to overwrite it")
			return nil
		}

		cfg := &configs.Config{
			Hostname:     hostname,
			Organization: configInitOrganization,
			Enterprise:   configInitEnterprise,
			SecretsFile:  configInitSecretsFile,
			ArchivePath:  configInitArchivePath,
			OutputDir:    outputDir,
			AuditLog:     auditLog,
		}
		if err := configs.SaveTOML(path, cfg); err != nil {
			return Logger.ErrorfAndReturn("failed to write %s: %v", path, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Check()+" Wrote "+ui.Path.Sprint(path))
		return nil
	},
}
