package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/tome/internal/constants"
)

// GetConfigDir returns the directory holding the configuration file.
// TOME_CONFIG_DIR takes precedence over the home directory.
func GetConfigDir(homeDir string) string {
	if dir := os.Getenv(constants.ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(homeDir, constants.ConfigDir)
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		GetConfigDir(homeDir),
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg, err := Load(homeDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Catalogs) == 0 {
		return &ConfigInitError{
			msg: fmt.Sprintf("no catalogs are configured in %s", configPath),
		}
	}

	return nil
}
