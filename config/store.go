package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "BirthdayPPT"
	configFileName = "config.json"
)

// DefaultStorageDir returns ~/BirthdayPPT.
func DefaultStorageDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

// Path returns the config file path inside storageDir.
func Path(storageDir string) string {
	return filepath.Join(storageDir, configFileName)
}

// Load reads config.json from storageDir. A missing file yields Default.
func Load(storageDir string) (Config, error) {
	path := Path(storageDir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(storageDir), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults(storageDir)
	return cfg, nil
}

// Save writes cfg as indented JSON to storageDir/config.json.
func Save(storageDir string, cfg Config) error {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(Path(storageDir), data, 0644)
}
