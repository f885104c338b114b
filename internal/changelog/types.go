package changelog

// Changelog represents the root structure of a CHANGELOG.yaml file.
// Versions are ordered newest first, with "unreleased" on top when present.
type Changelog struct {
	Project string `yaml:"project"`
	// RepoURL enables compare links in the rendered markdown (optional).
	RepoURL  string    `yaml:"repo_url,omitempty"`
	Versions []Version `yaml:"versions"`
}

// Version is one release section. Version is a bare semantic version
// ("1.4.0") or "unreleased"; Date (YYYY-MM-DD) is required for releases.
type Version struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups entries by Keep a Changelog category.
// See https://keepachangelog.com/en/1.1.0/
type Changes struct {
	Added      []string `yaml:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty"`
}

// Entry is a flattened view of a single changelog line with its context.
type Entry struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	Version  string `yaml:"version"`
}

// Unreleased is the version identifier for changes not yet tagged.
const Unreleased = "unreleased"

// ValidCategories returns the Keep a Changelog categories in rendering order.
func ValidCategories() []string {
	return []string{"added", "changed", "deprecated", "removed", "fixed", "security"}
}

// IsValidCategory reports whether name is one of ValidCategories.
func IsValidCategory(name string) bool {
	for _, c := range ValidCategories() {
		if c == name {
			return true
		}
	}
	return false
}

// list returns a pointer to the slice backing category, or nil for an
// unknown category.
func (c *Changes) list(category string) *[]string {
	switch category {
	case "added":
		return &c.Added
	case "changed":
		return &c.Changed
	case "deprecated":
		return &c.Deprecated
	case "removed":
		return &c.Removed
	case "fixed":
		return &c.Fixed
	case "security":
		return &c.Security
	}
	return nil
}

// Get returns the entries filed under category.
func (c Changes) Get(category string) []string {
	if l := c.list(category); l != nil {
		return *l
	}
	return nil
}

// Add appends text to category.
func (c *Changes) Add(category, text string) error {
	l := c.list(category)
	if l == nil {
		return &ValidationError{Field: "category", Message: "unknown category " + category}
	}
	*l = append(*l, text)
	return nil
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	n := 0
	for _, cat := range ValidCategories() {
		n += len(c.Get(cat))
	}
	return n
}

// IsEmpty returns true if no category holds an entry.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// IsUnreleased returns true if this version represents unreleased changes.
func (v Version) IsUnreleased() bool {
	return v.Version == Unreleased
}

// Entries flattens the version in category order.
func (v Version) Entries() []Entry {
	entries := make([]Entry, 0, v.Changes.Count())
	for _, cat := range ValidCategories() {
		for _, text := range v.Changes.Get(cat) {
			entries = append(entries, Entry{Text: text, Category: cat, Version: v.Version})
		}
	}
	return entries
}
