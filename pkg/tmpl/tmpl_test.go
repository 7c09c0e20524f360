package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "insert format",
			tmpl: "^{{ .ID }}",
			data: map[string]string{"ID": "tz4a98xxat96iws9zmbrgj3a"},
			want: "^tz4a98xxat96iws9zmbrgj3a",
		},
		{
			name: "markdown anchor format",
			tmpl: `<a id="{{ .ID }}"></a>`,
			data: map[string]string{"ID": "k9zmbr"},
			want: `<a id="k9zmbr"></a>`,
		},
		{
			name: "keybinding command",
			tmpl: "printf %s {{ .ID | shq }} | xclip -selection clipboard",
			data: map[string]string{"ID": "k9zmbr"},
			want: "printf %s 'k9zmbr' | xclip -selection clipboard",
		},
		{
			name: "struct data",
			tmpl: "{{ .ID }} in {{ .File }}",
			data: struct {
				ID   string
				File string
			}{ID: "abc", File: "notes.md"},
			want: "abc in notes.md",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"ID": "abc"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .ID }",
			data:    map[string]string{"ID": "abc"},
			wantErr: true,
		},
		{
			name: "empty value is valid",
			tmpl: "prefix{{ .Selection }}suffix",
			data: map[string]string{"Selection": ""},
			want: "prefixsuffix",
		},
		{
			name: "shq with spaces",
			tmpl: "echo {{ .Selection | shq }}",
			data: map[string]string{"Selection": "hello world"},
			want: "echo 'hello world'",
		},
		{
			name: "shq with single quotes",
			tmpl: "echo {{ .Selection | shq }}",
			data: map[string]string{"Selection": "it's a test"},
			want: `echo 'it'\''s a test'`,
		},
		{
			name: "shq with empty string",
			tmpl: "echo {{ .Selection | shq }}",
			data: map[string]string{"Selection": ""},
			want: "echo ''",
		},
		{
			name: "shq defuses command substitution",
			tmpl: "echo {{ .Selection | shq }}",
			data: map[string]string{"Selection": "$(whoami) && rm -rf /"},
			want: "echo '$(whoami) && rm -rf /'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
