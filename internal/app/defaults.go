package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - CALORIEMGL_CONFIG_PATH: config file location (default: ~/.config/caloriemgl.toml)
//   - CALORIEMGL_HOME: base directory for app data (default: ~/.local/share/caloriemgl)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking CALORIEMGL_CONFIG_PATH
// env var first, then falling back to the default ~/.config/caloriemgl.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("CALORIEMGL_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "caloriemgl.toml"), nil
}

// getBaseDir returns the base directory for app data, checking CALORIEMGL_HOME
// env var first, then falling back to the XDG default ~/.local/share/caloriemgl.
func getBaseDir() (string, error) {
	if path := os.Getenv("CALORIEMGL_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "caloriemgl"), nil
}
