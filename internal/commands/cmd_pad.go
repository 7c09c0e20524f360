package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/glyphpad/glyph/internal/tui"
	"github.com/glyphpad/glyph/pkg/executil"
)

type PadCmd struct {
	flags *Flags
}

// NewPadCmd creates a new pad command
func NewPadCmd(flags *Flags) *PadCmd {
	return &PadCmd{flags: flags}
}

// Register adds the pad command to the application
func (cmd *PadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pad",
		Usage:     "Open the scratch pad",
		UsageText: "glyph pad [file]",
		Description: `Opens the interactive scratch pad, optionally backed by a file.

Without a file the pad is an unsaved scratch buffer. With a file the buffer
loads its contents and ctrl+s writes them back; a missing file is created
on first save.

Running 'glyph' with no arguments opens a scratch pad too.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the pad. Exported for use as default command.
func (cmd *PadCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *PadCmd) run(_ context.Context, c *cli.Command) error {
	file := c.Args().First()

	var text string
	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			text = string(data)
		case !os.IsNotExist(err):
			return fmt.Errorf("read %s: %w", file, err)
		}
	}

	opts := tui.Options{
		File:     file,
		Text:     text,
		Executor: &executil.RealExecutor{},
	}

	m := tui.New(cmd.flags.Generator, cmd.flags.Config, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run pad: %w", err)
	}

	return nil
}
