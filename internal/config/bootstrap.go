package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig guarantees a config file exists in the data dir, writing
// the defaults on first run so users have something to edit.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	b, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
