package cli

import (
	"fmt"

	"github.com/ariel-frischer/chlog/internal/health"
	"github.com/spf13/cobra"
)

var doctorRepoFlag string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check repository, configuration and changelog files",
	Long: `Run the project health checks:
  - the working directory is inside a git repository
  - configuration loads and validates
  - CHANGELOG.yaml is valid (a missing file is fine)
  - CHANGELOG.md is an up-to-date render of CHANGELOG.yaml

Exits with code 1 when any check fails.`,
	Example: `  chlog doctor`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := health.RunHealthChecks(health.Options{
			RepoPath:   doctorRepoFlag,
			ConfigPath: configFlag,
		})

		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
		if !report.Passed {
			return NewExitError(ExitValidationFailed)
		}
		return nil
	},
}

func init() {
	doctorCmd.GroupID = GroupSetup
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVar(&doctorRepoFlag, "repo", "", "Path inside the git repository (default: current directory)")
}
