package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/spf13/cobra"
)

var showLastFlag int

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View entries from CHANGELOG.yaml",
	Long: `View changelog entries in the terminal.

By default, shows the 5 most recent entries. Pass a version to see all of its
entries.`,
	Example: `  chlog show              # 5 most recent entries
  chlog show v1.2.0       # all entries for 1.2.0
  chlog show unreleased   # unreleased changes
  chlog show --last 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := loadChangelog(cfg.ChangelogPath)
		if err != nil {
			return err
		}

		opts := changelog.FormatOptions{Plain: plainFlag}
		if len(args) == 1 {
			return showVersion(cmd, log, args[0], opts)
		}
		return showLastEntries(cmd, log, showLastFlag, opts)
	},
}

func init() {
	showCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of entries to show")
}

func showVersion(cmd *cobra.Command, log *changelog.Changelog, version string, opts changelog.FormatOptions) error {
	v, err := log.GetVersion(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\nAvailable versions:\n", version)
			for _, ver := range notFound.AvailableVersions {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

func showLastEntries(cmd *cobra.Command, log *changelog.Changelog, n int, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if total := log.GetEntryCount(); total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
