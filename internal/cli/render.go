package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate CHANGELOG.md from CHANGELOG.yaml",
	Long: `Regenerate the markdown changelog from the YAML source.

Output is deterministic: rendering an unchanged CHANGELOG.yaml twice produces
identical files.`,
	Example: `  chlog render`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := loadChangelog(cfg.ChangelogPath)
		if err != nil {
			return err
		}
		if err := renderToFile(log, cfg.MarkdownPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rendered %s → %s\n", cfg.ChangelogPath, cfg.MarkdownPath)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify CHANGELOG.md matches CHANGELOG.yaml",
	Long: `Validate CHANGELOG.yaml and compare CHANGELOG.md with what render would
produce. Exits with code 1 when they differ, which makes it suitable for CI.`,
	Example: `  chlog check`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := loadChangelog(cfg.ChangelogPath)
		if err != nil {
			return err
		}

		inSync, err := changelog.MarkdownInSync(log, cfg.MarkdownPath)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime, "comparing "+cfg.MarkdownPath)
		}

		if !inSync {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s is out of sync with %s\n", cfg.MarkdownPath, cfg.ChangelogPath)
			fmt.Fprintf(cmd.OutOrStdout(), "\nTo fix, run:\n  chlog render\n")
			return NewExitError(ExitValidationFailed)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is in sync with %s\n", cfg.MarkdownPath, cfg.ChangelogPath)
		return nil
	},
}

func init() {
	renderCmd.GroupID = GroupChangelog
	checkCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(renderCmd, checkCmd)
}

func loadChangelog(path string) (*changelog.Changelog, error) {
	log, err := changelog.Load(path)
	if err == nil {
		return log, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil, &clierrors.CLIError{
			Category:    clierrors.Configuration,
			Message:     fmt.Sprintf("%s not found", path),
			Remediation: []string{"Run 'chlog generate --write' to create it", "Or set changelog_path in .chlog/config.yml"},
			Err:         err,
		}
	}
	if changelog.IsValidationError(err) {
		return nil, clierrors.Wrap(err, clierrors.Configuration, "loading "+path,
			"Fix the field named above in "+path,
			"Versions must be X.Y.Z or unreleased, with a YYYY-MM-DD date for releases")
	}
	return nil, clierrors.Wrap(err, clierrors.Configuration, "loading "+path)
}

func renderToFile(log *changelog.Changelog, path string) error {
	content, err := changelog.RenderMarkdownString(log)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime, "writing "+path)
	}
	return nil
}
