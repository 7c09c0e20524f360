package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/glyphpad/glyph/internal/printer"
	"github.com/glyphpad/glyph/internal/scan"
)

type ScanCmd struct {
	flags   *Flags
	jsonOut bool
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags) *ScanCmd {
	return &ScanCmd{flags: flags}
}

// Register adds the scan command to the application
func (cmd *ScanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scan",
		Usage:     "Find duplicated ids across files",
		UsageText: "glyph scan [globs...]",
		Description: `Scans files for ids of the configured length and reports duplicates.

Globs given as arguments override scan.globs from the config. Patterns use
doublestar syntax and resolve against the current directory.

Examples:
  glyph scan
  glyph scan '**/*.md' 'docs/**/*.txt'`,
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

func (cmd *ScanCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	globs := c.Args().Slice()
	if len(globs) == 0 {
		globs = cfg.Scan.Globs
	}
	for _, g := range globs {
		if g == "" || !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid glob pattern %q", g)
		}
	}

	scanner := scan.NewScanner(log.With().Str("component", "scan").Logger())
	report, err := scanner.Scan(ctx, scan.Options{
		Root:        ".",
		Globs:       globs,
		Length:      cfg.ID.Length,
		MaxFileSize: cfg.Scan.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if cmd.jsonOut {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	return cmd.outputText(ctx, c, report)
}

func (cmd *ScanCmd) outputText(ctx context.Context, c *cli.Command, report *scan.Report) error {
	p := printer.Ctx(ctx)
	out := c.Root().Writer

	if len(report.Duplicates) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tSEEN\tLOCATION")

		for _, dup := range report.Duplicates {
			for i, loc := range dup.Locations {
				if i == 0 {
					_, _ = fmt.Fprintf(w, "%s\t%d\t%s:%d\n", dup.ID, len(dup.Locations), loc.File, loc.Line)
					continue
				}
				_, _ = fmt.Fprintf(w, "\t\t%s:%d\n", loc.File, loc.Line)
			}
		}

		_ = w.Flush()
		_, _ = fmt.Fprintln(out)
	}

	skipped := ""
	if report.FilesSkipped > 0 {
		skipped = fmt.Sprintf(", %d skipped", report.FilesSkipped)
	}
	p.Infof("Scanned %d file(s)%s: %d id(s), %d unique", report.FilesScanned, skipped, report.Hits, report.Unique)

	if len(report.Duplicates) > 0 {
		p.Warnf("%d id(s) appear more than once", len(report.Duplicates))
		return nil
	}

	p.Successf("No duplicated ids")
	return nil
}
