package cuid

import (
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestFingerprint_StableAcrossReads(t *testing.T) {
	a := Fingerprint()
	b := Fingerprint()
	if a != b {
		t.Errorf("Fingerprint() changed between reads: %q vs %q", a, b)
	}
}

func TestFingerprint_Shape(t *testing.T) {
	fp := Fingerprint()
	if len(fp) != fingerprintLength {
		t.Errorf("Fingerprint() length = %d, want %d", len(fp), fingerprintLength)
	}
	for i := 0; i < len(fp); i++ {
		if strings.IndexByte(digits, fp[i]) < 0 {
			t.Fatalf("Fingerprint() produced %q at index %d", fp[i], i)
		}
	}
}

func TestProcessSeed_Components(t *testing.T) {
	seed := processSeed()
	if !strings.HasPrefix(seed, strconv.Itoa(os.Getpid())) {
		t.Errorf("processSeed() does not start with the pid: %.40q", seed)
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		if !strings.Contains(seed, host) {
			t.Errorf("processSeed() missing hostname %q", host)
		}
	}
	t.Setenv("GLYPH_SEED_PROBE", "value-should-not-appear")
	seed = processSeed()
	if !strings.Contains(seed, "GLYPH_SEED_PROBE") {
		t.Error("processSeed() missing a set environment variable name")
	}
	if strings.Contains(seed, "value-should-not-appear") {
		t.Error("processSeed() leaked an environment variable value")
	}
}

func TestComputeFingerprint_UsesSeedAndSalt(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}, letters: []byte{'a'}}
	h := &recordingHasher{out: strings.Repeat("q", 60)}

	fp := computeFingerprint("seed-material", src, h)

	if want := strings.Repeat("q", fingerprintLength); fp != want {
		t.Errorf("computeFingerprint() = %q, want %q", fp, want)
	}
	// 32 salt digits of floor(0.5*36) = 'i' follow the seed.
	wantInput := "seed-material" + strings.Repeat("i", fingerprintLength)
	if len(h.inputs) != 1 || h.inputs[0] != wantInput {
		t.Errorf("hash input = %q, want %q", h.inputs, wantInput)
	}
}

func TestComputeFingerprint_FreshSaltDecorrelates(t *testing.T) {
	// Same seed, real source and hasher: the salt must keep outputs apart.
	h := NewHasher(VariantSHA3512)
	a := computeFingerprint("same-seed", cryptoSource{}, h)
	b := computeFingerprint("same-seed", cryptoSource{}, h)
	if a == b {
		t.Error("computeFingerprint() repeated with identical seeds")
	}
	if len(a) != fingerprintLength || len(b) != fingerprintLength {
		t.Errorf("computeFingerprint() lengths = %d, %d", len(a), len(b))
	}
}
