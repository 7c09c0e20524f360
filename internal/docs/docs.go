// Package docs holds the markdown documents served by the doc command
// and rendered inside the pad's help modal.
package docs

// Scheme describes the anatomy of a glyph identifier.
const Scheme = `# Glyph ID Scheme

Glyph IDs are short, collision-resistant identifiers that are safe to
use in URLs, filenames, CSS selectors, and HTML element IDs.

## Anatomy

` + "```" + `
tz4a98xxat96iws9zmbrgj3a
│└──────────┬───────────┘
│           └ base36 slice of a salted hash
└ random lowercase letter
` + "```" + `

The leading letter guarantees the ID never starts with a digit and
carries no information about when or where it was generated.

## Ingredients

| Ingredient  | Purpose |
|-------------|---------|
| letter      | random a-z prefix, drawn fresh per ID |
| time        | nanosecond timestamp, base 36 |
| entropy     | random base36 salt, one digit per character of output |
| counter     | monotonic session counter, randomly seeded |
| fingerprint | 32-char host fingerprint (PID, hostname, environment) |

Everything after the letter is a base36 slice of a 512-bit hash over
time + entropy + counter + fingerprint. The hash's first base36 digit
is discarded because it does not cover the full 0-35 range evenly.

## Length and collisions

IDs are 24 characters by default and can be configured from 1 to 98.
At the default length there are 26 x 36^23 (about 10^37) possible IDs,
which puts the 50% birthday-collision bound near 4 x 10^18 generated
IDs. Shorter IDs trade collision resistance for brevity:

| Length | Approximate space |
|--------|-------------------|
| 8      | 2 x 10^12          |
| 12     | 3 x 10^18          |
| 16     | 6 x 10^24          |
| 24     | 2 x 10^37          |
| 32     | 3 x 10^49          |

## Validation

A well-formed ID starts with a lowercase letter and contains only
lowercase letters and digits. ` + "`glyph scan`" + ` uses the same rule when
searching files for IDs.

## Tuning

` + "```yaml" + `
id:
  length: 24       # 1..98
  hash: sha3-512   # or sha-512
` + "```" + `

IDs are not cryptographic secrets. The entropy source is the
operating system's CSPRNG, but the scheme makes no hardness claims
beyond collision resistance.
`

// ConfigSample is a fully commented example configuration.
const ConfigSample = `# Glyph Configuration

Glyph reads its configuration from ` + "`$XDG_CONFIG_HOME/glyph/config.yaml`" + `
(override with ` + "`--config`" + ` or ` + "`GLYPH_CONFIG`" + `).

` + "```yaml" + `
id:
  # Characters per generated ID (1..98).
  length: 24
  # Hash function: sha3-512 (default) or sha-512.
  hash: sha3-512

editor:
  # Template applied when inserting an ID into the pad.
  # {{ .ID }} expands to the generated ID.
  insert_format: "{{ .ID }}"
  # Spaces inserted when pressing tab.
  tab_width: 4

scan:
  # Glob patterns searched by 'glyph scan'.
  globs:
    - "**/*.md"
  # Files larger than this are skipped (bytes, 0 = no limit).
  max_file_size: 4194304

# Custom pad keybindings. Keys must carry a modifier (ctrl+x, alt+x)
# or be a function key, and may not shadow a built-in binding.
keybindings:
  ctrl+y:
    sh: "printf %s '{{ .ID }}' | xclip -selection clipboard"
    help: copy last ID
  alt+o:
    sh: "xdg-open {{ .File | shq }}"
    help: open file
    confirm: Open the current file in the system handler?
` + "```" + `

## Template data

Keybinding commands are rendered with:

| Field         | Value |
|---------------|-------|
| ` + "`{{ .ID }}`" + `        | the last inserted ID, or a fresh one |
| ` + "`{{ .File }}`" + `      | path of the file open in the pad |
| ` + "`{{ .Selection }}`" + ` | currently selected text, if any |

The ` + "`shq`" + ` function shell-quotes a value for safe interpolation.
`
