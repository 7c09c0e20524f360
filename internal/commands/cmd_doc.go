package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/glyphpad/glyph/internal/docs"
)

type DocCmd struct {
	flags *Flags
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Reference documentation",
		Description: `Prints reference documentation as markdown.

Use 'glyph doc scheme' for the anatomy of a generated id.
Use 'glyph doc config' for an annotated sample configuration.`,
		Commands: []*cli.Command{
			cmd.schemeCmd(),
			cmd.configCmd(),
		},
	})
	return app
}

func (cmd *DocCmd) schemeCmd() *cli.Command {
	return &cli.Command{
		Name:        "scheme",
		Usage:       "Show the id scheme reference",
		Description: "Outputs the id anatomy, the collision table, and the validation rule as markdown.",
		Action: func(_ context.Context, c *cli.Command) error {
			_, _ = io.WriteString(c.Root().Writer, docs.Scheme+"\n")
			return nil
		},
	}
}

func (cmd *DocCmd) configCmd() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Show an annotated sample config",
		Description: "Outputs a fully commented glyph config file. Redirect it to create a starting point:\n\n  glyph doc config > ~/.config/glyph/config.yaml",
		Action: func(_ context.Context, c *cli.Command) error {
			_, _ = io.WriteString(c.Root().Writer, docs.ConfigSample+"\n")
			return nil
		},
	}
}
