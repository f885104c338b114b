package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes entries grouped by version with colored category
// headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupEntriesByVersion(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeVersionHeader(group[0].Version, "", w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", group[0].Version, err)
		}
		if err := writeEntries(group, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", group[0].Version, err)
		}
	}
	return nil
}

// FormatVersion writes a single version with its date.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	if err := writeVersionHeader(v.Version, v.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return writeEntries(v.Entries(), w, opts, resolveWidth(opts.MaxWidth))
}

// groupEntriesByVersion splits consecutive entries sharing a version.
func groupEntriesByVersion(entries []Entry) [][]Entry {
	var groups [][]Entry
	for i, e := range entries {
		if i == 0 || entries[i-1].Version != e.Version {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], e)
	}
	return groups
}

// writeEntries writes entries under category headers in standard order.
func writeEntries(entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	byCategory := make(map[string][]Entry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	for _, cat := range ValidCategories() {
		group, ok := byCategory[cat]
		if !ok {
			continue
		}
		style := categoryStyles[cat]
		if err := writeCategoryHeader(cat, style, w, opts); err != nil {
			return err
		}
		for _, e := range group {
			if err := writeEntry(e, style, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := "v" + version
	if version == Unreleased {
		header = "Unreleased"
	} else if date != "" {
		header = fmt.Sprintf("v%s (%s)", version, date)
	}

	if !opts.Plain {
		header = color.New(color.Bold).Sprint(header)
	}
	_, err := fmt.Fprintf(w, "## %s\n", header)
	return err
}

func writeCategoryHeader(category string, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	name := capitalizeFirst(category)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", name)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(name))
	return err
}

func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry.Text)
		return err
	}

	wrapped := wrapText(entry.Text, width-len(prefix), "    ")
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, style.Color.Sprint(wrapped))
	return err
}

// resolveWidth returns maxWidth, the stdout terminal width, or 80.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := strings.LastIndexByte(remaining[:maxWidth], ' ')
		if breakPoint <= 0 {
			breakPoint = maxWidth
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if remaining != "" {
		lines = append(lines, remaining)
	}
	return strings.Join(lines, "\n"+indent)
}
