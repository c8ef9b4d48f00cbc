package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".authcheck"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that matters: an explicitly specified
// path that is missing is an error, a missing default file is not.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a File from a YAML path.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Aliases == nil {
		f.Aliases = make(map[string]string)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file:
//  1. The explicit path, when one is given.
//  2. .authcheck in the current directory.
//  3. .authcheck in the user's home directory.
//
// Returns the path found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
