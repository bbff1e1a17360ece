package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
)

// parseFlags overrides cfg from command-line flags.
//
//	-a string    listen address (e.g. "127.0.0.1:3000"), wins over -p
//	-p string    listen port
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret
//	-t duration  token lifetime, 0 disables expiry
//	-l string    log level
//
// Only these flags are considered; -c/-config and anything else is filtered
// out beforehand.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-p", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.Port, "p", cfg.Port, "port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "token lifetime (0 = no expiry)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	return fs.Parse(filtered)
}
