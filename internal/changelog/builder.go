package changelog

import (
	"strings"

	"github.com/ariel-frischer/chlog/internal/conventional"
	"github.com/ariel-frischer/chlog/internal/normalize"
)

// unknownCategory receives commits whose type has no mapping when
// Builder.IncludeUnknown is set.
const unknownCategory = "changed"

// Builder turns a sequence of commits into a changelog Version.
type Builder struct {
	// Hook cleans and filters each parsed entry. A nil Hook keeps every
	// entry with a non-blank subject.
	Hook normalize.MessageBuilderHook
	// TypeCategories maps lowercase commit types to categories.
	// Nil means DefaultTypeCategories.
	TypeCategories map[string]string
	// IncludeScope prefixes entries with "**scope:** ".
	IncludeScope bool
	// IncludeUnknown files commits with unmapped or missing types under
	// "changed" instead of skipping them.
	IncludeUnknown bool
	// BreakingCategory, when set, overrides the category of "type!:" commits.
	BreakingCategory string
	// Logf receives per-commit debug output. Optional.
	Logf func(format string, args ...any)
}

// Stats counts what happened to the commits passed to Build.
type Stats struct {
	Seen     int
	Admitted int
	// Dropped counts entries rejected by the hook (empty or duplicate).
	Dropped int
	// Skipped counts commits whose type is not part of the changelog.
	Skipped int
}

// Build runs every commit through the parser and hook, in the order given,
// and files admitted entries under their category.
func (b *Builder) Build(version, date string, commits []normalize.Commit) (*Version, Stats) {
	v := &Version{Version: version, Date: date}
	if v.IsUnreleased() {
		v.Date = ""
	} else {
		v.Version = NormalizeVersion(version)
	}

	hook := b.Hook
	if hook == nil {
		hook = keepNonEmpty
	}

	var stats Stats
	for _, commit := range commits {
		stats.Seen++
		hash := shortHash(commit)

		entry := conventional.EntryFromCommit(hash, commitMessage(commit))
		category, ok := b.categoryFor(entry)
		if !ok {
			stats.Skipped++
			b.logf("[changelog] skip %s: type %q not in changelog", hash, entry.ChangeType)
			continue
		}

		admitted, ok := hook(entry, commit)
		if !ok {
			stats.Dropped++
			b.logf("[changelog] drop %s: empty or duplicate subject", hash)
			continue
		}

		if err := v.Changes.Add(category, b.formatEntry(admitted)); err != nil {
			stats.Skipped++
			b.logf("[changelog] skip %s: %v", hash, err)
			continue
		}
		stats.Admitted++
	}

	return v, stats
}

func (b *Builder) categoryFor(entry *normalize.Entry) (string, bool) {
	if entry.Breaking && b.BreakingCategory != "" {
		return b.BreakingCategory, true
	}

	categories := b.TypeCategories
	if categories == nil {
		categories = DefaultTypeCategories()
	}
	if category, ok := categories[entry.ChangeType]; ok {
		return category, true
	}
	if b.IncludeUnknown {
		return unknownCategory, true
	}
	return "", false
}

func (b *Builder) formatEntry(entry *normalize.Entry) string {
	if b.IncludeScope && entry.Scope != "" {
		return "**" + entry.Scope + ":** " + entry.Subject
	}
	return entry.Subject
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

func keepNonEmpty(entry *normalize.Entry, _ normalize.Commit) (*normalize.Entry, bool) {
	if strings.TrimSpace(entry.Subject) == "" {
		return nil, false
	}
	return entry, true
}

func shortHash(commit normalize.Commit) string {
	if h, ok := commit.(interface{ ShortHash() string }); ok {
		return h.ShortHash()
	}
	return ""
}

func commitMessage(commit normalize.Commit) string {
	if commit == nil {
		return ""
	}
	return commit.Message()
}
