package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override values from config.json.
const (
	EnvTemplate    = "BIRTHDAY_PPT_TEMPLATE"
	EnvFont        = "BIRTHDAY_PPT_FONT"
	EnvLanguage    = "BIRTHDAY_PPT_LANGUAGE"
	EnvLogDir      = "BIRTHDAY_PPT_LOG_DIR"
	EnvDetailedLog = "BIRTHDAY_PPT_DETAILED_LOG"
)

// LoadEnvFiles loads .env files into the process environment. Variables that
// are already set win over the files. A missing file is not an error.
func LoadEnvFiles(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides cfg with the BIRTHDAY_PPT_* variables found through lookup.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvTemplate); ok {
		cfg.TemplatePath = v
	}
	if v, ok := lookup(EnvFont); ok && v != "" {
		cfg.FontFamily = v
	}
	if v, ok := lookup(EnvLanguage); ok && v != "" {
		cfg.Language = v
	}
	if v, ok := lookup(EnvLogDir); ok && v != "" {
		cfg.LogDir = v
	}
	if v, ok := lookup(EnvDetailedLog); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DetailedLog = b
		}
	}
	return cfg
}

// ReadEnvFile parses a .env file without touching the process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	return godotenv.Read(path)
}
