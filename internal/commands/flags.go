package commands

import (
	"os"
	"path/filepath"

	"github.com/glyphpad/glyph/internal/core/config"
	"github.com/glyphpad/glyph/pkg/cuid"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Generator produces IDs with the configured length and hash variant
	Generator *cuid.Generator
}

// NewGenerator builds a generator for the configured hash variant at the
// given length. Config validation at load time guarantees the variant
// spelling parses.
func (f *Flags) NewGenerator(length int) *cuid.Generator {
	variant, _ := cuid.ParseHashVariant(f.Config.ID.Hash)
	return cuid.New(cuid.WithLength(length), cuid.WithHashVariant(variant))
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "glyph", "config.yaml")
}
