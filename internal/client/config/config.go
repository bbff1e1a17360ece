// Package config holds the CLI client's runtime settings. Values come from
// defaults, then environment variables and flags (wired in the cli package).
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	EnvServerURL = "SERVER_URL"
	EnvTokenFile = "GOPHTODO_TOKEN_FILE"
)

// Config holds runtime settings for the todo CLI.
type Config struct {
	ServerURL string
	TokenFile string
	Timeout   time.Duration
}

// LoadDefaults populates c with defaults for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.TokenFile = DefaultTokenFile()
	c.Timeout = 10 * time.Second
}

// DefaultTokenFile is $HOME/.gophtodo/token, or a relative path when the
// home directory is unknown.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".gophtodo", "token")
	}
	return filepath.Join(home, ".gophtodo", "token")
}
