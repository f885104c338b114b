package config

import "github.com/ariel-frischer/chlog/internal/changelog"

// GetDefaults returns the default value of every configuration key.
func GetDefaults() map[string]any {
	categories := make(map[string]any)
	for t, c := range changelog.DefaultTypeCategories() {
		categories[t] = c
	}

	return map[string]any{
		"project":           "",
		"repo_url":          "",
		"changelog_path":    "CHANGELOG.yaml",
		"markdown_path":     "CHANGELOG.md",
		"include_scope":     true,
		"include_unknown":   false,
		"skip_merges":       true,
		"breaking_category": "",
		"type_categories":   categories,
	}
}

// GetDefaultConfigTemplate returns a commented project config written by
// 'chlog init'.
func GetDefaultConfigTemplate() string {
	return `# chlog configuration
# Environment variables (CHLOG_<KEY>) override these values.

project: ""                    # Defaults to the repository directory name
repo_url: ""                   # e.g. https://github.com/you/project (enables compare links)

changelog_path: CHANGELOG.yaml # Source of truth
markdown_path: CHANGELOG.md    # Rendered output

include_scope: true            # Prefix entries with **scope:**
include_unknown: false         # File unmapped commit types under "changed"
skip_merges: true              # Ignore merge commits
breaking_category: ""          # Route "type!:" commits here (e.g. changed)

# Commit type -> added | changed | deprecated | removed | fixed | security
# Merged over the built-in mapping; set a type to "" to leave it out.
type_categories:
  feat: added
  fix: fixed
  perf: changed
  refactor: changed
  revert: removed
  deprecate: deprecated
  remove: removed
  security: security
`
}
