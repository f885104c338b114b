package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// RenderMarkdown writes c as a Keep a Changelog markdown document.
// Output is deterministic for a given input.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range c.Versions {
		v := &c.Versions[i]
		if _, err := fmt.Fprintf(w, "\n%s\n", VersionHeader(v)); err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
		if err := RenderChanges(&v.Changes, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
	}

	if err := renderFooterLinks(c, w); err != nil {
		return fmt.Errorf("rendering footer links: %w", err)
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarkdownInSync reports whether the file at path holds exactly what
// RenderMarkdown produces for c. A missing file is out of sync.
func MarkdownInSync(c *Changelog, path string) (bool, error) {
	expected, err := RenderMarkdownString(c)
	if err != nil {
		return false, err
	}

	actual, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(actual) == expected, nil
}

func renderHeader(c *Changelog, w io.Writer) error {
	header := `# Changelog

All notable changes to ` + c.Project + ` will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).
`
	_, err := io.WriteString(w, header)
	return err
}

// VersionHeader returns the markdown heading of a version section.
func VersionHeader(v *Version) string {
	if v.IsUnreleased() {
		return "## [Unreleased]"
	}
	return fmt.Sprintf("## [%s] - %s", v.Version, v.Date)
}

// RenderChanges writes the non-empty categories of c as "### Name" sections,
// suitable on their own as release notes.
func RenderChanges(c *Changes, w io.Writer) error {
	for _, cat := range ValidCategories() {
		entries := c.Get(cat)
		if len(entries) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n### %s\n", capitalizeFirst(cat)); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, "- %s\n", entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderFooterLinks writes version comparison links when RepoURL is set.
func renderFooterLinks(c *Changelog, w io.Writer) error {
	repoURL := strings.TrimSuffix(c.RepoURL, "/")
	if repoURL == "" || len(c.Versions) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for i := range c.Versions {
		link := formatVersionLink(c.Versions, i, repoURL)
		if link == "" {
			continue
		}
		if _, err := io.WriteString(w, link+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatVersionLink(versions []Version, index int, repoURL string) string {
	v := versions[index]
	hasPrev := index+1 < len(versions)

	if v.IsUnreleased() {
		if !hasPrev {
			return ""
		}
		return fmt.Sprintf("[Unreleased]: %s/compare/v%s...HEAD", repoURL, versions[index+1].Version)
	}

	if hasPrev {
		return fmt.Sprintf("[%s]: %s/compare/v%s...v%s", v.Version, repoURL, versions[index+1].Version, v.Version)
	}
	return fmt.Sprintf("[%s]: %s/releases/tag/v%s", v.Version, repoURL, v.Version)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
