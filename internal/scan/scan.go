// Package scan finds ID-shaped tokens in plain-text files and reports
// duplicates. It exists to answer "did an ID get copy-pasted somewhere it
// should not have been" across a vault of notes.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/glyphpad/glyph/pkg/cuid"
)

// Location is one occurrence of an ID in the scanned tree.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Duplicate is an ID that occurs more than once, with every place it was
// seen.
type Duplicate struct {
	ID        string     `json:"id"`
	Locations []Location `json:"locations"`
}

// Report aggregates one scan run.
type Report struct {
	FilesScanned int         `json:"files_scanned"`
	FilesSkipped int         `json:"files_skipped"`
	Hits         int         `json:"hits"`
	Unique       int         `json:"unique"`
	Duplicates   []Duplicate `json:"duplicates,omitempty"`
}

// Options bounds a scan run.
type Options struct {
	// Root is the directory the globs are resolved against.
	Root string
	// Globs are doublestar patterns selecting the files to scan.
	Globs []string
	// Length is the exact ID length to look for.
	Length int
	// MaxFileSize in bytes; larger files are skipped. Zero or negative
	// means no limit.
	MaxFileSize int64
}

// Scanner walks files matching glob patterns and collects ID occurrences.
type Scanner struct {
	log zerolog.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan runs the globs against opts.Root and reports every ID-shaped token
// of the configured length. Paths in the report are relative to the root.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Report, error) {
	if opts.Length < 1 || opts.Length > cuid.MaxLength {
		return nil, fmt.Errorf("scan length %d out of range 1-%d", opts.Length, cuid.MaxLength)
	}

	root := opts.Root
	if root == "" {
		root = "."
	}

	re := tokenPattern(opts.Length)
	report := &Report{}
	hits := make(map[string][]Location)
	seen := make(map[string]bool)

	for _, pattern := range opts.Globs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fullPattern := filepath.Join(root, pattern)
		matches, err := doublestar.FilepathGlob(fullPattern, doublestar.WithNoFollow())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		slices.Sort(matches)

		s.log.Debug().
			Str("pattern", pattern).
			Int("matches", len(matches)).
			Msg("scanning glob")

		for _, match := range matches {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			rel, err := filepath.Rel(root, match)
			if err != nil {
				return nil, fmt.Errorf("relative path for %q: %w", match, err)
			}
			if seen[rel] {
				continue
			}
			seen[rel] = true

			s.scanFile(match, rel, re, opts.MaxFileSize, report, hits)
		}
	}

	for _, locs := range hits {
		report.Hits += len(locs)
	}
	report.Unique = len(hits)

	for id, locs := range hits {
		if len(locs) > 1 {
			report.Duplicates = append(report.Duplicates, Duplicate{ID: id, Locations: locs})
		}
	}
	sort.Slice(report.Duplicates, func(i, j int) bool {
		return report.Duplicates[i].ID < report.Duplicates[j].ID
	})

	return report, nil
}

// scanFile reads one file and records every valid ID occurrence. Unreadable
// and oversize files are skipped, never fatal.
func (s *Scanner) scanFile(path, rel string, re *regexp.Regexp, maxSize int64, report *Report, hits map[string][]Location) {
	info, err := os.Lstat(path)
	if err != nil {
		s.log.Warn().Err(err).Str("file", rel).Msg("skipping unreadable file")
		report.FilesSkipped++
		return
	}
	if !info.Mode().IsRegular() {
		s.log.Debug().Str("file", rel).Msg("skipping non-regular file")
		return
	}
	if maxSize > 0 && info.Size() > maxSize {
		s.log.Debug().
			Str("file", rel).
			Int64("size", info.Size()).
			Int64("max", maxSize).
			Msg("skipping oversize file")
		report.FilesSkipped++
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn().Err(err).Str("file", rel).Msg("skipping unreadable file")
		report.FilesSkipped++
		return
	}

	report.FilesScanned++

	lineNo := 0
	for line := range strings.Lines(string(data)) {
		lineNo++
		for _, id := range findIDs(line, re) {
			hits[id] = append(hits[id], Location{File: rel, Line: lineNo})
		}
	}
}

// tokenPattern builds the candidate matcher for IDs of the given length.
func tokenPattern(length int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`[a-z][0-9a-z]{%d}`, length-1))
}

// findIDs returns the valid IDs on one line. A candidate only counts when
// the characters around it are not alphanumeric, so IDs embedded in longer
// tokens stay invisible while underscores and punctuation still delimit.
func findIDs(line string, re *regexp.Regexp) []string {
	var ids []string
	for _, span := range re.FindAllStringIndex(line, -1) {
		start, end := span[0], span[1]
		if start > 0 && isWordByte(line[start-1]) {
			continue
		}
		if end < len(line) && isWordByte(line[end]) {
			continue
		}
		if id := line[start:end]; cuid.IsValid(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func isWordByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
