// Package cli implements the gophtodo command-line client.
package cli

import (
	"bufio"
	"errors"
	"io"

	ucli "github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
)

const envKey = "env"

// env is what commands need at run time. It is built once in Before.
type env struct {
	auth   services.AuthService
	todos  services.TodoService
	api    client.Client
	reader *bufio.Reader
}

// NewApp builds the CLI reading prompts from in and printing to out.
func NewApp(in io.Reader, out io.Writer) *ucli.App {
	var defaults config.Config
	defaults.LoadDefaults()

	return &ucli.App{
		Name:      "gophtodo",
		Usage:     "manage your todo list from the terminal",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "todo server URL",
				EnvVars: []string{config.EnvServerURL},
				Value:   defaults.ServerURL,
			},
			&ucli.StringFlag{
				Name:    "token-file",
				Usage:   "where the access token is kept",
				EnvVars: []string{config.EnvTokenFile},
				Value:   defaults.TokenFile,
			},
			&ucli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
				Value: defaults.Timeout,
			},
		},
		Commands: []*ucli.Command{
			signupCommand(),
			signinCommand(),
			logoutCommand(),
			listCommand(),
			addCommand(),
			updateCommand(),
			healthCommand(),
		},
		Before: func(c *ucli.Context) error {
			cfg := &config.Config{
				ServerURL: c.String("server"),
				TokenFile: c.String("token-file"),
				Timeout:   c.Duration("timeout"),
			}
			if cfg.ServerURL == "" {
				return errors.New("server URL is required")
			}

			api := client.NewHTTPClient(cfg.ServerURL, cfg.Timeout)
			auth := services.NewAuthService(api, cfg.TokenFile)

			if c.App.Metadata == nil {
				c.App.Metadata = map[string]any{}
			}
			c.App.Metadata[envKey] = &env{
				auth:   auth,
				todos:  services.NewTodoService(api, auth),
				api:    api,
				reader: bufio.NewReader(c.App.Reader),
			}
			return nil
		},
	}
}

func getEnv(c *ucli.Context) *env {
	e, _ := c.App.Metadata[envKey].(*env)
	return e
}
