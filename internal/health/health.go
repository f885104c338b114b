// Package health runs the project checks behind 'chlog doctor': that git
// history is readable, configuration loads, CHANGELOG.yaml validates and
// CHANGELOG.md matches it.
package health

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	"github.com/ariel-frischer/chlog/internal/git"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Skipped is set when a check could not run because an earlier one failed.
	Skipped bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects what RunHealthChecks inspects.
type Options struct {
	// RepoPath is any path inside the repository; "" means the working directory.
	RepoPath string
	// ConfigPath overrides the project config file, as with --config.
	ConfigPath string
}

func (r *HealthReport) add(result CheckResult) {
	r.Checks = append(r.Checks, result)
	if !result.Passed && !result.Skipped {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}

	report.add(CheckRepository(opts.RepoPath))

	cfg, cfgCheck := CheckConfig(opts.ConfigPath)
	report.add(cfgCheck)
	if cfg == nil {
		report.add(CheckResult{Name: "Changelog", Skipped: true, Message: "skipped (configuration failed to load)"})
		return report
	}

	log, logCheck := CheckChangelog(cfg.ChangelogPath)
	report.add(logCheck)
	if log == nil {
		return report
	}

	report.add(CheckMarkdown(log, cfg.MarkdownPath))
	return report
}

// CheckRepository checks that path is inside a git repository.
func CheckRepository(path string) CheckResult {
	if !git.IsGitRepository(path) {
		return CheckResult{Name: "Git repository", Passed: false, Message: "not inside a git repository"}
	}

	tag, err := git.LatestTag(path)
	switch {
	case err != nil:
		return CheckResult{Name: "Git repository", Passed: false, Message: fmt.Sprintf("reading tags: %v", err)}
	case tag == "":
		return CheckResult{Name: "Git repository", Passed: true, Message: "found (no tags yet, full history will be used)"}
	default:
		return CheckResult{Name: "Git repository", Passed: true, Message: fmt.Sprintf("found (latest tag %s)", tag)}
	}
}

// CheckConfig loads configuration. The returned config is nil when loading
// failed.
func CheckConfig(path string) (*config.Configuration, CheckResult) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	if err != nil {
		return nil, CheckResult{Name: "Configuration", Passed: false, Message: err.Error()}
	}
	return cfg, CheckResult{Name: "Configuration", Passed: true, Message: "loaded"}
}

// CheckChangelog validates the changelog at path. A missing file passes since
// 'chlog generate --write' creates it. The returned changelog is nil unless
// the file exists and is valid.
func CheckChangelog(path string) (*changelog.Changelog, CheckResult) {
	log, err := changelog.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, CheckResult{
			Name:    "Changelog",
			Passed:  true,
			Message: fmt.Sprintf("%s not created yet (run 'chlog generate --write')", path),
		}
	case err != nil:
		return nil, CheckResult{Name: "Changelog", Passed: false, Message: err.Error()}
	}

	return log, CheckResult{
		Name:    "Changelog",
		Passed:  true,
		Message: fmt.Sprintf("%s valid (%d versions, %d entries)", path, len(log.Versions), log.GetEntryCount()),
	}
}

// CheckMarkdown checks that the markdown at path is an up-to-date render of log.
func CheckMarkdown(log *changelog.Changelog, path string) CheckResult {
	inSync, err := changelog.MarkdownInSync(log, path)
	if err != nil {
		return CheckResult{Name: "Markdown", Passed: false, Message: err.Error()}
	}
	if !inSync {
		return CheckResult{Name: "Markdown", Passed: false, Message: fmt.Sprintf("%s is out of sync (run 'chlog render')", path)}
	}
	return CheckResult{Name: "Markdown", Passed: true, Message: fmt.Sprintf("%s in sync", path)}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		switch {
		case check.Skipped:
			mark = "○"
		case !check.Passed:
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}
