package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a changelog validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Load reads and validates a CHANGELOG.yaml file.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadOrNew loads path, or returns an empty changelog for project when the
// file does not exist yet.
func LoadOrNew(path, project string) (*Changelog, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Changelog{Project: project}, nil
	}
	return c, err
}

// LoadFromReader decodes and validates a CHANGELOG.yaml document.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	var c Changelog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks project, version identifiers, dates and entries.
// Versions must be unique after normalization and at most one may be
// unreleased.
func Validate(c *Changelog) error {
	if c.Project == "" {
		return &ValidationError{Field: "project", Message: "required field is empty"}
	}

	seen := make(map[string]bool)
	unreleased := 0

	for i := range c.Versions {
		v := &c.Versions[i]
		if err := validateVersion(v, i); err != nil {
			return err
		}

		key := NormalizeVersion(v.Version)
		if seen[key] {
			return &ValidationError{
				Field:   fmt.Sprintf("versions[%d].version", i),
				Message: fmt.Sprintf("duplicate version %q", v.Version),
			}
		}
		seen[key] = true

		if v.IsUnreleased() {
			unreleased++
		}
	}

	if unreleased > 1 {
		return &ValidationError{Field: "versions", Message: "only one 'unreleased' version is allowed"}
	}
	return nil
}

func validateVersion(v *Version, index int) error {
	field := func(name string) string { return fmt.Sprintf("versions[%d].%s", index, name) }

	if v.Version == "" {
		return &ValidationError{Field: field("version"), Message: "required field is empty"}
	}

	if !v.IsUnreleased() {
		if !semverPattern.MatchString(v.Version) {
			return &ValidationError{
				Field:   field("version"),
				Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", v.Version),
			}
		}
		if v.Date == "" {
			return &ValidationError{Field: field("date"), Message: "date is required for released versions"}
		}
	}

	if v.Date != "" && !datePattern.MatchString(v.Date) {
		return &ValidationError{
			Field:   field("date"),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", v.Date),
		}
	}

	if v.Changes.IsEmpty() {
		return &ValidationError{Field: field("changes"), Message: "at least one change entry is required"}
	}

	for _, cat := range ValidCategories() {
		for i, text := range v.Changes.Get(cat) {
			if strings.TrimSpace(text) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("versions[%d].changes.%s[%d]", index, cat, i),
					Message: "change entry cannot be empty",
				}
			}
		}
	}
	return nil
}

// NormalizeVersion lowercases a version and removes a "v" prefix, so
// "v0.6.0" and "0.6.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
