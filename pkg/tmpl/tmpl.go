// Package tmpl renders the Go template strings that appear in glyph
// configuration: ID insert formats and shell keybinding commands.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// ShellQuote returns a shell-safe quoted string. It wraps the string in
// single quotes and escapes embedded single quotes with the '\” technique.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

var funcs = template.FuncMap{
	"shq": ShellQuote,
}

// Render executes a Go template string with the given data. Undefined keys
// are errors rather than empty output, so a typo in a config template fails
// loudly instead of silently dropping the ID.
//
// Available template functions:
//   - shq: shell-quote a string for safe use in shell commands
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
