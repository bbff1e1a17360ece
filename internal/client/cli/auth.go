package cli

import (
	"fmt"

	ucli "github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// prompted returns the flag value, or asks for it when the flag is empty.
func prompted(c *ucli.Context, flag, prompt string) (string, error) {
	if v := c.String(flag); v != "" {
		return v, nil
	}
	return getSimpleText(getEnv(c).reader, prompt, c.App.Writer)
}

func signupCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "signup",
		Usage: "create an account",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "email address"},
			&ucli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "display name"},
		},
		Action: func(c *ucli.Context) error {
			username, err := prompted(c, "username", "Enter user name (email)")
			if err != nil {
				return err
			}
			name, err := prompted(c, "name", "Enter your name")
			if err != nil {
				return err
			}
			password, err := getPassword(c.App.Writer)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			msg, err := getEnv(c).auth.Register(c.Context, username, password, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, msg)
			return nil
		},
	}
}

func signinCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "signin",
		Usage: "sign in and remember the access token",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "email address"},
		},
		Action: func(c *ucli.Context) error {
			username, err := prompted(c, "username", "Enter user name (email)")
			if err != nil {
				return err
			}
			password, err := getPassword(c.App.Writer)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := getEnv(c).auth.Login(c.Context, username, password); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Signed in")
			return nil
		},
	}
}

func logoutCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "logout",
		Usage: "forget the saved access token",
		Action: func(c *ucli.Context) error {
			if err := getEnv(c).auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Signed out")
			return nil
		},
	}
}

func healthCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "health",
		Usage: "check that the server is up",
		Action: func(c *ucli.Context) error {
			if err := getEnv(c).api.Health(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "ok")
			return nil
		},
	}
}
