// Package cli implements the chlog command-line interface with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupSetup     = "setup"
)

var (
	configFlag string
	debugFlag  bool
	plainFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Build Keep a Changelog files from conventional commits",
	Long: `chlog reads conventional commits from git history and files them into a
CHANGELOG.yaml following Keep a Changelog, then renders CHANGELOG.md.

Each commit subject is cleaned before it is written: trailing PR references
like "(#123)" are stripped, empty subjects fall back to the commit body or
header, and entries repeating an earlier (type, scope, subject) in the same
run are dropped.`,
	Example: `  # Preview unreleased changes since the latest tag
  chlog generate

  # Cut a release and update CHANGELOG.yaml / CHANGELOG.md
  chlog generate --version 1.4.0 --write

  # Check what a single commit message would become
  chlog normalize "feat(api): add login (#12)"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebug(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default: .chlog/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors/icons)")
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

func printError(cmd *cobra.Command, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.New(clierrors.Runtime, err.Error())
	}
	clierrors.Fprint(cmd.ErrOrStderr(), cliErr, !plainFlag)
}

// configureDebug wires the pluggable debug loggers to stderr.
func configureDebug(cmd *cobra.Command) {
	if !debugFlag {
		git.SetDebugLogger(nil)
		return
	}
	git.SetDebugLogger(debugLogger(cmd))
}

func debugLogger(cmd *cobra.Command) func(format string, args ...any) {
	if !debugFlag {
		return nil
	}
	w := cmd.ErrOrStderr()
	return func(format string, args ...any) {
		fmt.Fprintf(w, "[debug] "+format+"\n", args...)
	}
}

// loadConfig loads configuration honoring --config, and fills in the project
// name from the working directory when it is not configured.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration, "loading configuration",
			"Check "+config.ProjectConfigPath()+" for typos",
			"Run 'chlog init --force' to regenerate a default config")
	}

	if cfg.Project == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.Project = filepath.Base(wd)
		}
	}
	return cfg, nil
}
