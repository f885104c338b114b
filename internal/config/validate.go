package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"gopkg.in/yaml.v3"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+):\s*`)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks that filePath holds well-formed YAML.
// Missing and empty files are valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		msg := strings.TrimPrefix(err.Error(), "yaml: ")
		return &ValidationError{
			FilePath: filePath,
			Line:     extractLine(msg),
			Message:  yamlLinePattern.ReplaceAllString(msg, ""),
		}
	}
	return nil
}

func extractLine(msg string) int {
	m := yamlLinePattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// ValidateConfigValues checks paths and category names.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if strings.TrimSpace(cfg.ChangelogPath) == "" {
		return &ValidationError{FilePath: filePath, Field: "changelog_path", Message: "must not be empty"}
	}
	if strings.TrimSpace(cfg.MarkdownPath) == "" {
		return &ValidationError{FilePath: filePath, Field: "markdown_path", Message: "must not be empty"}
	}

	if cfg.BreakingCategory != "" && !changelog.IsValidCategory(cfg.BreakingCategory) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "breaking_category",
			Message:  fmt.Sprintf("unknown category %q (valid: %v)", cfg.BreakingCategory, changelog.ValidCategories()),
		}
	}

	if err := changelog.ValidateTypeCategories(cfg.TypeCategories); err != nil {
		return &ValidationError{FilePath: filePath, Field: "type_categories", Message: err.Error()}
	}
	return nil
}
