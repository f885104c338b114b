package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the user-level config file, following the XDG Base
// Directory Specification on Linux (~/.config/chlog/config.yml).
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chlog", "config.yml"), nil
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".chlog"
}

// ProjectConfigPath returns the project-level YAML config path.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config path.
func ProjectJSONConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.json")
}
