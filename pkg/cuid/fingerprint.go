package cuid

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// fingerprintLength is the size of the host fingerprint component mixed
// into every hash input.
const fingerprintLength = 32

var (
	fingerprintOnce sync.Once
	fingerprintVal  string
)

// Fingerprint returns the process fingerprint: a 32-character base-36 value
// derived from the pid, the hostname, environment variable names, and fresh
// entropy. It is computed once and reused for the life of the process.
func Fingerprint() string {
	fingerprintOnce.Do(func() {
		fingerprintVal = computeFingerprint(processSeed(), cryptoSource{}, NewHasher(VariantSHA3512))
	})
	return fingerprintVal
}

// processSeed collects host identity material: pid in decimal, hostname,
// and the names of all environment variables in host order. Values never
// enter the seed.
func processSeed() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(os.Getpid()))
	host, _ := os.Hostname()
	b.WriteString(host)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		b.WriteString(name)
	}
	return b.String()
}

// computeFingerprint hashes seed plus 32 characters of fresh entropy and
// keeps the first 32 characters of the result.
func computeFingerprint(seed string, src RandomSource, h Hasher) string {
	salt, _ := entropyFrom(src, fingerprintLength)
	fp := h.Hash(seed + salt)
	if len(fp) > fingerprintLength {
		fp = fp[:fingerprintLength]
	}
	return fp
}
