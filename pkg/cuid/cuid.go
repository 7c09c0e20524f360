// Package cuid generates collision-resistant identifiers for embedding in
// plain text: fixed length, lowercase alphanumeric, starting with a letter
// so the result is always a legal identifier and double-click selectable.
// Each ID hashes a timestamp, a session counter, random entropy, and a host
// fingerprint, so no component is recoverable from the output.
//
// IDs are not cryptographically secure and carry no uniqueness guarantee
// beyond what the fingerprint, timestamp, and counter provide.
package cuid

import (
	"strconv"
	"sync"
	"time"
)

const (
	// DefaultLength is the ID length used when no option overrides it.
	DefaultLength = 24
	// MaxLength is the largest ID a single 512-bit digest can cover.
	MaxLength = 98

	// initialCountMax bounds the random starting value of a default
	// counter: [0, 476782367).
	initialCountMax = 476782367
)

// Generator produces IDs from one counter, one fingerprint, and one random
// source. A Generator is not safe for concurrent use; confine it to a
// single goroutine or guard it externally. The package-level Generate is
// the guarded shared path.
type Generator struct {
	length      int
	counter     *Counter
	fingerprint string
	random      RandomSource
	hasher      Hasher
	now         func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLength sets the produced ID length. Out-of-range lengths are reported
// by Generate, not here.
func WithLength(n int) Option {
	return func(g *Generator) { g.length = n }
}

// WithCounter substitutes the counter shared by this Generator's IDs.
func WithCounter(c *Counter) Option {
	return func(g *Generator) { g.counter = c }
}

// WithFingerprint overrides the process fingerprint component.
func WithFingerprint(fp string) Option {
	return func(g *Generator) { g.fingerprint = fp }
}

// WithRandom substitutes the random source.
func WithRandom(src RandomSource) Option {
	return func(g *Generator) { g.random = src }
}

// WithHasher substitutes the Hasher wholesale.
func WithHasher(h Hasher) Option {
	return func(g *Generator) { g.hasher = h }
}

// WithHashVariant selects the digest algorithm of the production Hasher.
func WithHashVariant(v HashVariant) Option {
	return func(g *Generator) { g.hasher = NewHasher(v) }
}

// WithNow substitutes the clock read for the timestamp component.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New builds a Generator. Construction never fails; length problems surface
// from Generate so the zero-configuration path stays a one-liner. Defaults:
// DefaultLength, SHA3-512 hashing, crypto/rand randomness, the process
// fingerprint, and a fresh randomly seeded Counter.
func New(opts ...Option) *Generator {
	g := &Generator{
		length: DefaultLength,
		random: cryptoSource{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.hasher == nil {
		g.hasher = NewHasher(VariantSHA3512)
	}
	if g.counter == nil {
		// Seeded from the generator's own source so a scripted source
		// makes the whole Generator deterministic.
		g.counter = NewCounter(int64(g.random.UnitFloat() * initialCountMax))
	}
	if g.fingerprint == "" {
		g.fingerprint = Fingerprint()
	}
	return g
}

// Generate returns one new ID of the configured length.
func (g *Generator) Generate() (string, error) {
	switch {
	case g.length > MaxLength:
		return "", ErrLengthExceeded
	case g.length < 1:
		return "", ErrInvalidLength
	}

	first := g.random.LowercaseLetter()
	timePart := strconv.FormatInt(g.now().UnixNano(), 36)
	salt, err := entropyFrom(g.random, g.length)
	if err != nil {
		return "", err
	}
	count := encodeBase36(g.counter.Next())

	// Input order is fixed by the scheme; reordering would change every ID.
	hashed := g.hasher.Hash(timePart + salt + count + g.fingerprint)

	// The Hasher already dropped one leading character; skip one more and
	// keep length-1 to follow the random first letter.
	body := hashed
	if len(body) > 0 {
		body = body[1:]
	}
	if need := g.length - 1; len(body) >= need {
		body = body[:need]
	} else {
		// A 512-bit digest occasionally encodes to fewer than 98 digits.
		// Top up from the entropy source; the length invariant is firm.
		fill, _ := entropyFrom(g.random, need-len(body))
		body += fill
	}
	return string(first) + body, nil
}

var (
	defaultMu  sync.Mutex
	defaultGen *Generator
)

// Generate returns one ID from the shared process-default generator. Unlike
// Generator methods it is safe for concurrent use.
func Generate() (string, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGen == nil {
		defaultGen = New()
	}
	return defaultGen.Generate()
}

// IsValid reports whether s is shaped like an ID from this scheme: 1 to
// MaxLength characters, a lowercase letter first, lowercase base-36 after.
func IsValid(s string) bool {
	if len(s) < 1 || len(s) > MaxLength {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
