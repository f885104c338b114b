package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .chlog/config.yml with default settings",
	Long: `Write a commented project configuration to .chlog/config.yml.

An existing file is left untouched unless --force is given.`,
	Example: `  chlog init
  chlog init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectConfigPath()

		if _, err := os.Stat(path); err == nil && !initForceFlag {
			return clierrors.New(clierrors.Configuration, path+" already exists",
				"Use 'chlog init --force' to overwrite it")
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime, "creating "+filepath.Dir(path))
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime, "writing "+path)
		}

		check := "✓"
		if !plainFlag {
			check = color.GreenString(check)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", check, path)
		return nil
	},
}

func init() {
	initCmd.GroupID = GroupSetup
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "Overwrite an existing config")
}
