// Package config handles configuration loading and validation for glyph.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/glyphpad/glyph/pkg/cuid"
	"github.com/glyphpad/glyph/pkg/tmpl"
)

// InsertTemplateData defines the fields available to editor.insert_format.
type InsertTemplateData struct {
	ID string
}

// KeybindingTemplateData defines the fields available to keybinding sh
// templates.
type KeybindingTemplateData struct {
	ID        string
	File      string
	Selection string
}

// builtinKeys are the pad's fixed keys; config keybindings must not shadow
// them. ctrl+space arrives from the terminal as ctrl+@.
var builtinKeys = map[string]bool{
	"ctrl+g": true,
	"ctrl+r": true,
	"ctrl+s": true,
	"ctrl+d": true,
	"ctrl+q": true,
	"ctrl+c": true,
	"ctrl+@": true,
	"esc":    true,
}

var fnKeyPattern = regexp.MustCompile(`^f([1-9]|1[0-2])$`)

// Config holds the application configuration.
type Config struct {
	ID          IDConfig              `yaml:"id"`
	Editor      EditorConfig          `yaml:"editor"`
	Scan        ScanConfig            `yaml:"scan"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
}

// IDConfig controls the generator defaults.
type IDConfig struct {
	// Length of generated IDs, 1-98.
	Length int `yaml:"length"`
	// Hash variant: "sha3-512" (default) or "sha-512".
	Hash string `yaml:"hash"`
}

// EditorConfig controls the pad.
type EditorConfig struct {
	// InsertFormat is the template wrapped around an ID when it is
	// inserted into the buffer. Must reference {{ .ID }}.
	InsertFormat string `yaml:"insert_format"`
	// TabWidth is the rendered width of a tab character.
	TabWidth int `yaml:"tab_width"`
}

// ScanConfig controls the scan command defaults.
type ScanConfig struct {
	// Globs are doublestar patterns selecting the files to scan.
	Globs []string `yaml:"globs"`
	// MaxFileSize in bytes; larger files are skipped.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// Keybinding defines a custom pad keybinding running a shell command.
type Keybinding struct {
	Sh      string `yaml:"sh"`      // shell command template
	Help    string `yaml:"help"`    // help text shown in the pad
	Confirm string `yaml:"confirm"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ID: IDConfig{
			Length: cuid.DefaultLength,
			Hash:   "sha3-512",
		},
		Editor: EditorConfig{
			InsertFormat: "{{ .ID }}",
			TabWidth:     4,
		},
		Scan: ScanConfig{
			Globs:       []string{"**/*.md"},
			MaxFileSize: 4 << 20,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path. A missing file yields the
// defaults; a present file is merged over them.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.ID.Length == 0 {
		c.ID.Length = defaults.ID.Length
	}
	if c.ID.Hash == "" {
		c.ID.Hash = defaults.ID.Hash
	}
	if c.Editor.InsertFormat == "" {
		c.Editor.InsertFormat = defaults.Editor.InsertFormat
	}
	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if len(c.Scan.Globs) == 0 {
		c.Scan.Globs = defaults.Scan.Globs
	}
	if c.Scan.MaxFileSize == 0 {
		c.Scan.MaxFileSize = defaults.Scan.MaxFileSize
	}
	if c.Keybindings == nil {
		c.Keybindings = map[string]Keybinding{}
	}
}

// Validate checks the configuration, reporting every problem at once as
// criterio field errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.ID.Length < 1 || c.ID.Length > cuid.MaxLength {
		errs = errs.Append("id.length", fmt.Errorf("must be between 1 and %d", cuid.MaxLength))
	}
	if _, err := cuid.ParseHashVariant(c.ID.Hash); err != nil {
		errs = errs.Append("id.hash", err)
	}

	// The insert format must render and must carry the ID through intact.
	const probe = "tz4a98xxat96iws9zmbrgj3a"
	out, err := tmpl.Render(c.Editor.InsertFormat, InsertTemplateData{ID: probe})
	switch {
	case err != nil:
		errs = errs.Append("editor.insert_format", err)
	case !strings.Contains(out, probe):
		errs = errs.Append("editor.insert_format", fmt.Errorf("template must include {{ .ID }}"))
	}

	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = errs.Append("editor.tab_width", fmt.Errorf("must be between 1 and 16"))
	}

	if len(c.Scan.Globs) == 0 {
		errs = errs.Append("scan.globs", fmt.Errorf("at least one glob is required"))
	}
	for i, g := range c.Scan.Globs {
		if g == "" || !doublestar.ValidatePattern(g) {
			errs = errs.Append(fmt.Sprintf("scan.globs[%d]", i), fmt.Errorf("invalid pattern %q", g))
		}
	}
	if c.Scan.MaxFileSize < 0 {
		errs = errs.Append("scan.max_file_size", fmt.Errorf("must not be negative"))
	}

	keys := make([]string, 0, len(c.Keybindings))
	for k := range c.Keybindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		kb := c.Keybindings[key]
		field := fmt.Sprintf("keybindings[%s]", key)

		if !keyHasModifier(key) {
			errs = errs.Append(field, fmt.Errorf("key must carry a ctrl+ or alt+ modifier (or be f1-f12)"))
			continue
		}
		if builtinKeys[key] {
			errs = errs.Append(field, fmt.Errorf("key shadows a built-in pad binding"))
			continue
		}
		if kb.Sh == "" {
			errs = errs.Append(field+".sh", fmt.Errorf("shell command is required"))
			continue
		}
		if _, err := tmpl.Render(kb.Sh, KeybindingTemplateData{}); err != nil {
			errs = errs.Append(field+".sh", err)
		}
	}

	return errs.ToError()
}

// keyHasModifier reports whether a key spelling is reachable without
// shadowing plain typing: ctrl+/alt+ chords and function keys qualify.
func keyHasModifier(key string) bool {
	if rest, ok := strings.CutPrefix(key, "ctrl+"); ok {
		return rest != ""
	}
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		return rest != ""
	}
	return fnKeyPattern.MatchString(key)
}
