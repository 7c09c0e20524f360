package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/glyphpad/glyph/pkg/cuid"
)

type FingerprintCmd struct {
	flags   *Flags
	jsonOut bool
}

// NewFingerprintCmd creates a new fingerprint command
func NewFingerprintCmd(flags *Flags) *FingerprintCmd {
	return &FingerprintCmd{flags: flags}
}

// Register adds the fingerprint command to the application
func (cmd *FingerprintCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fingerprint",
		Usage:     "Print the process fingerprint",
		UsageText: "glyph fingerprint",
		Description: `Prints the host fingerprint mixed into every id this process generates.

The fingerprint derives from the pid, the hostname, environment variable
names, and fresh entropy. It is stable for the life of the process and
never recoverable from generated ids.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOut,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FingerprintCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	fp := cuid.Fingerprint()

	if cmd.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Fingerprint string `json:"fingerprint"`
		}{Fingerprint: fp})
	}

	_, _ = fmt.Fprintln(out, fp)
	return nil
}
