package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDefaultLang = "REVU_DEFAULT_LANG"
	EnvTheme       = "REVU_THEME"
	EnvLogLevel    = "REVU_LOG_LEVEL"
)

// DefaultLang is the route locale when nothing else is configured.
const DefaultLang = "en-US"

// LoadDotEnv loads variables from the given .env files (".env" when none
// are named). Missing files are skipped; variables already set in the
// environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDefaultLang); v != "" {
		c.Lang = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme.Name = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
