package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	ucli "github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

func listCommand() *ucli.Command {
	return &ucli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "show your todos",
		Flags: []ucli.Flag{
			&ucli.BoolFlag{Name: "json", Usage: "print raw JSON"},
		},
		Action: func(c *ucli.Context) error {
			todos, err := getEnv(c).todos.List(c.Context)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(todos)
			}

			if len(todos) == 0 {
				fmt.Fprintln(c.App.Writer, "No todos yet")
				return nil
			}
			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDONE\tDESCRIPTION")
			for _, t := range todos {
				mark := " "
				if t.Done {
					mark = "x"
				}
				fmt.Fprintf(tw, "%s\t[%s]\t%s\n", t.ID, mark, t.Description)
			}
			return tw.Flush()
		},
	}
}

func addCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "add",
		Usage:     "create a todo",
		ArgsUsage: "<description>",
		Flags: []ucli.Flag{
			&ucli.BoolFlag{Name: "done", Usage: "mark as done right away"},
		},
		Action: func(c *ucli.Context) error {
			description := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if description == "" {
				return errors.New("usage: add <description>")
			}

			id, err := getEnv(c).todos.Add(c.Context, description, c.Bool("done"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Todo created: %s\n", id)
			return nil
		},
	}
}

func updateCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "update",
		Usage:     "change a todo's description or done flag",
		ArgsUsage: "<id>",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description"},
			&ucli.BoolFlag{Name: "done", Usage: "set done (use --done=false to reopen)"},
		},
		Action: func(c *ucli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: update <id> [--description text] [--done]")
			}

			var patch models.TodoPatch
			if c.IsSet("description") {
				d := c.String("description")
				patch.Description = &d
			}
			if c.IsSet("done") {
				done := c.Bool("done")
				patch.Done = &done
			}

			msg, err := getEnv(c).todos.Update(c.Context, c.Args().First(), patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, msg)
			return nil
		},
	}
}
