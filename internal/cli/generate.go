package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/normalize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatMarkdown = "markdown"
	formatTerminal = "terminal"
	formatYAML     = "yaml"
)

var (
	generateRepoFlag    string
	generateFromFlag    string
	generateToFlag      string
	generateAllFlag     bool
	generateVersionFlag string
	generateDateFlag    string
	generateFormatFlag  string
	generateWriteFlag   bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Build a changelog section from git commits",
	Long: `Build a changelog section from the conventional commits in a range.

By default the range starts after the most recent tag and ends at HEAD, and
the section is printed as unreleased markdown. Use --write to merge it into
the configured CHANGELOG.yaml and re-render CHANGELOG.md.

Commits are cleaned and de-duplicated within a single run: the same
(type, scope, subject) is only listed once.`,
	Example: `  chlog generate
  chlog generate --from v1.3.0 --to main --format terminal
  chlog generate --version 1.4.0 --write
  chlog generate --all --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateRepoFlag, "repo", "", "Path inside the git repository (default: current directory)")
	generateCmd.Flags().StringVar(&generateFromFlag, "from", "", "Exclude commits reachable from this revision (default: latest tag)")
	generateCmd.Flags().StringVar(&generateToFlag, "to", "HEAD", "Newest revision to include")
	generateCmd.Flags().BoolVar(&generateAllFlag, "all", false, "Include the full history, ignoring tags")
	generateCmd.Flags().StringVar(&generateVersionFlag, "version", changelog.Unreleased, "Version of the generated section")
	generateCmd.Flags().StringVar(&generateDateFlag, "date", "", "Release date YYYY-MM-DD (default: today for releases)")
	generateCmd.Flags().StringVarP(&generateFormatFlag, "format", "f", formatMarkdown, "Output format: markdown | terminal | yaml")
	generateCmd.Flags().BoolVarP(&generateWriteFlag, "write", "w", false, "Merge into CHANGELOG.yaml and re-render CHANGELOG.md")
	generateCmd.MarkFlagsMutuallyExclusive("from", "all")
}

func runGenerate(cmd *cobra.Command) error {
	if !generateWriteFlag && !isValidFormat(generateFormatFlag) {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown format %q", generateFormatFlag),
			"chlog generate --format markdown|terminal|yaml")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	commits, err := collectCommits(cmd, cfg)
	if err != nil {
		return err
	}

	v, stats := buildVersion(cmd, cfg, commits)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d commits: %d entries, %d dropped, %d skipped\n",
		stats.Seen, stats.Admitted, stats.Dropped, stats.Skipped)

	if generateWriteFlag {
		return writeVersion(cmd, cfg, v)
	}
	return printVersion(cmd.OutOrStdout(), v, generateFormatFlag)
}

func collectCommits(cmd *cobra.Command, cfg *config.Configuration) ([]git.Commit, error) {
	if !git.IsGitRepository(generateRepoFlag) {
		return nil, &clierrors.CLIError{
			Category:    clierrors.Repository,
			Message:     "not inside a git repository",
			Remediation: []string{"Run chlog from your project checkout, or pass --repo <path>"},
		}
	}

	from := generateFromFlag
	if from == "" && !generateAllFlag {
		tag, err := git.LatestTag(generateRepoFlag)
		if err != nil {
			return nil, clierrors.Wrap(err, clierrors.Repository, "finding latest tag")
		}
		from = tag
	}

	stop := startSpinner(cmd.ErrOrStderr(), "Reading commits...")
	commits, err := git.CollectCommits(cmd.Context(), git.RangeOptions{
		RepoPath:   generateRepoFlag,
		From:       from,
		To:         generateToFlag,
		SkipMerges: cfg.SkipMerges,
	})
	stop()
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Repository, "reading commits",
			"Check that --from and --to name existing revisions")
	}
	return commits, nil
}

// buildVersion runs commits through a fresh normalization session.
func buildVersion(cmd *cobra.Command, cfg *config.Configuration, commits []git.Commit) (*changelog.Version, changelog.Stats) {
	builder := cfg.BuilderOptions()
	builder.Hook = normalize.NewSession().Hook()
	builder.Logf = debugLogger(cmd)

	records := make([]normalize.Commit, len(commits))
	for i := range commits {
		records[i] = commits[i]
	}

	date := generateDateFlag
	if date == "" && changelog.NormalizeVersion(generateVersionFlag) != changelog.Unreleased {
		date = time.Now().Format("2006-01-02")
	}

	version := generateVersionFlag
	if changelog.NormalizeVersion(version) == changelog.Unreleased {
		version = changelog.Unreleased
	}
	return builder.Build(version, date, records)
}

func writeVersion(cmd *cobra.Command, cfg *config.Configuration, v *changelog.Version) error {
	if v.Changes.IsEmpty() {
		return clierrors.New(clierrors.Runtime, "no changelog entries in the selected range",
			"Use --from/--to or --all to widen the range",
			"Set include_unknown: true to keep commits with unmapped types")
	}

	log, err := changelog.LoadOrNew(cfg.ChangelogPath, cfg.Project)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration, "loading "+cfg.ChangelogPath)
	}
	if log.RepoURL == "" {
		log.RepoURL = cfg.RepoURL
	}

	if pending := log.GetUnreleased(); pending != nil && !v.IsUnreleased() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Replacing unreleased section (%d entries) with %s\n",
			pending.Changes.Count(), v.Version)
	}

	changelog.Merge(log, v)
	if err := changelog.Save(cfg.ChangelogPath, log); err != nil {
		if changelog.IsValidationError(err) {
			return clierrors.Wrap(err, clierrors.Argument, "invalid changelog section",
				"Check --version (X.Y.Z or unreleased) and --date (YYYY-MM-DD)")
		}
		return clierrors.Wrap(err, clierrors.Runtime, "saving "+cfg.ChangelogPath)
	}
	if err := renderToFile(log, cfg.MarkdownPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d entries for %s to %s and %s\n",
		v.Changes.Count(), v.Version, cfg.ChangelogPath, cfg.MarkdownPath)
	return nil
}

func printVersion(w io.Writer, v *changelog.Version, format string) error {
	switch format {
	case formatTerminal:
		return changelog.FormatVersion(v, w, changelog.FormatOptions{Plain: plainFlag})
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding version: %w", err)
		}
		return enc.Close()
	default:
		if _, err := fmt.Fprintln(w, changelog.VersionHeader(v)); err != nil {
			return err
		}
		return changelog.RenderChanges(&v.Changes, w)
	}
}

func isValidFormat(format string) bool {
	switch format {
	case formatMarkdown, formatTerminal, formatYAML:
		return true
	}
	return false
}
