package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// dotenvFiles are read into the process environment before env vars are
// collected. Missing files are skipped; variables already set are kept.
var dotenvFiles = []string{".env"}

// knownKeys maps environment variable names to config keys.
var knownKeys = map[string]string{
	"ADDRESS":          "address",
	"PORT":             "port",
	"DATABASE_DSN":     "database_dsn",
	"JWT_SECRET":       "jwt_secret",
	"TOKEN_TTL":        "token_ttl",
	"BCRYPT_COST":      "bcrypt_cost",
	"LOG_LEVEL":        "log_level",
	"SHUTDOWN_TIMEOUT": "shutdown_timeout",
}

// loadSources overlays the config file (if -c/-config is given) and then the
// environment on top of cfg. Keys absent from every source keep their
// current values.
func loadSources(cfg *Config, args []string) error {
	k := koanf.New(".")

	if path := flagx.ConfigFileFlag(args); path != "" {
		// yaml is a superset of json, so one parser serves both
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := loadDotenv(); err != nil {
		return err
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func loadDotenv() error {
	for _, name := range dotenvFiles {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// envKey maps an environment variable to its config key. Returning "" makes
// koanf skip the variable: unrelated names and empty values are ignored.
func envKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return knownKeys[strings.ToUpper(name)], value
}
