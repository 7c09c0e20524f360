package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/glyphpad/glyph/internal/core/config"
	"github.com/glyphpad/glyph/internal/printer"
)

func TestDoctorCmd_JSONHealthy(t *testing.T) {
	var buf bytes.Buffer
	app := NewDoctorCmd(newTestFlags(t)).Register(newTestApp(&buf))

	ctx := printer.NewContext(context.Background(), printer.New(&bytes.Buffer{}))
	if err := app.Run(ctx, []string{"glyph", "doctor", "--format", "json"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var out struct {
		Healthy bool `json:"healthy"`
		Summary struct {
			Passed int `json:"passed"`
			Warned int `json:"warned"`
			Failed int `json:"failed"`
		} `json:"summary"`
		Checks []struct {
			Name string `json:"name"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !out.Healthy {
		t.Error("expected healthy with default config")
	}
	if out.Summary.Failed != 0 {
		t.Errorf("expected 0 failures, got %d", out.Summary.Failed)
	}
	if out.Summary.Passed == 0 {
		t.Error("expected passing items")
	}
	if len(out.Checks) != 4 {
		t.Errorf("expected 4 checks, got %d", len(out.Checks))
	}
}

func TestDoctorCmd_JSONUnhealthy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ID.Length = 200
	cfg.ID.Hash = "md5"
	flags := &Flags{Config: &cfg}
	flags.Generator = flags.NewGenerator(config.DefaultConfig().ID.Length)

	var buf bytes.Buffer
	app := NewDoctorCmd(flags).Register(newTestApp(&buf))

	ctx := printer.NewContext(context.Background(), printer.New(&bytes.Buffer{}))
	if err := app.Run(ctx, []string{"glyph", "doctor", "--format", "json"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var out struct {
		Healthy bool `json:"healthy"`
		Summary struct {
			Failed int `json:"failed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Healthy {
		t.Error("expected unhealthy with invalid config")
	}
	if out.Summary.Failed == 0 {
		t.Error("expected failing items")
	}
}

func TestDoctorCmd_TextHealthy(t *testing.T) {
	var buf bytes.Buffer
	app := NewDoctorCmd(newTestFlags(t)).Register(newTestApp(&buf))

	var report bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&report))
	if err := app.Run(ctx, []string{"glyph", "doctor"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := report.String()
	for _, want := range []string{"Configuration", "Generator", "Entropy", "Hashing", "Summary:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "0 failed") {
		t.Errorf("expected no failures in summary:\n%s", out)
	}
}

func TestDoctorCmd_TextFailureExitsNonzero(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ID.Length = 200
	flags := &Flags{Config: &cfg}
	flags.Generator = flags.NewGenerator(config.DefaultConfig().ID.Length)

	cmd := NewDoctorCmd(flags)

	var report bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&report))

	err := cmd.run(ctx, &cli.Command{Name: "glyph", Writer: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected exit error when a check fails")
	}

	coder, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected cli exit error, got %T: %v", err, err)
	}
	if coder.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %d", coder.ExitCode())
	}

	if !strings.Contains(report.String(), "id.length") {
		t.Errorf("expected id.length failure in report:\n%s", report.String())
	}
}
