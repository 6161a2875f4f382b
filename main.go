package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/ghadmin/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghadmin",
	Short: "ghadmin - GitHub administration scripts in one CLI.",
	Long: `ghadmin automates GitHub organization and enterprise administration:
bulk provisioning of Actions and Dependabot secrets, secret inventories,
enterprise repository network reports and migration archive helpers.

Usage:
  ghadmin <command> [flags]

Available Commands:
  secrets     Create, update and export secrets
  report      Generate enterprise reports
  migrations  Work with migration archives
  config      Manage ghadmin.toml

Run 'ghadmin help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("ghadmin", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'ghadmin --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.SecretsCmd)
	rootCmd.AddCommand(cmd.ReportCmd)
	rootCmd.AddCommand(cmd.MigrationsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
