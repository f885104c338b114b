// Package config provides layered configuration for chlog using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.chlog/config.yml) > user config (~/.config/chlog/config.yml) > defaults.
// Project configuration may also be written as JSON (.chlog/config.json).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHLOG_"

// Configuration represents the chlog configuration.
type Configuration struct {
	// Project names the changelog owner. Defaults to the repository directory name.
	Project string `koanf:"project"`
	// RepoURL enables compare links in CHANGELOG.md.
	RepoURL string `koanf:"repo_url"`

	ChangelogPath string `koanf:"changelog_path"`
	MarkdownPath  string `koanf:"markdown_path"`

	IncludeScope   bool `koanf:"include_scope"`
	IncludeUnknown bool `koanf:"include_unknown"`
	SkipMerges     bool `koanf:"skip_merges"`
	// BreakingCategory files "type!:" commits under this category when set.
	BreakingCategory string `koanf:"breaking_category"`

	// TypeCategories maps commit types to Keep a Changelog categories.
	// Entries merge over the defaults; map a type to "" to drop it.
	TypeCategories map[string]string `koanf:"type_categories"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .chlog/config.yml)
	ProjectConfigPath string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	loadDefaults(k)

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		if err := loadFile(k, userPath); err != nil {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	return finalizeConfig(k)
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the explicit path, or .chlog/config.yml, or
// .chlog/config.json. An explicit path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		if err := loadFile(k, customPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}

	yamlPath := ProjectConfigPath()
	jsonPath := ProjectJSONConfigPath()
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: both %s and %s exist; using %s\n", yamlPath, jsonPath, yamlPath)
		}
		if err := loadFile(k, yamlPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	case jsonExists:
		if err := loadFile(k, jsonPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadFile picks the parser from the file extension. YAML files are syntax
// checked first so errors carry line numbers.
func loadFile(k *koanf.Koanf, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for t, category := range cfg.TypeCategories {
		if category == "" {
			delete(cfg.TypeCategories, t)
		}
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// BuilderOptions returns a changelog builder configured from cfg. The hook is
// left for the caller to inject.
func (c *Configuration) BuilderOptions() changelog.Builder {
	return changelog.Builder{
		TypeCategories:   c.TypeCategories,
		IncludeScope:     c.IncludeScope,
		IncludeUnknown:   c.IncludeUnknown,
		BreakingCategory: c.BreakingCategory,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHLOG_INCLUDE_SCOPE -> include_scope
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
