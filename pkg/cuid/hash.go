package cuid

import (
	"crypto/sha3"
	"crypto/sha512"
	"fmt"
	"math/big"
)

// HashVariant selects the digest algorithm behind the production Hasher.
// The variant is fixed when a Generator is constructed; it is a deployment
// decision, never a per-call branch.
type HashVariant uint8

const (
	// VariantSHA3512 digests with SHA3-512. This is the package default.
	VariantSHA3512 HashVariant = iota
	// VariantSHA512 digests with SHA-512, for hosts pinned to SHA-2.
	VariantSHA512
)

func (v HashVariant) String() string {
	if v == VariantSHA512 {
		return "sha-512"
	}
	return "sha3-512"
}

// ParseHashVariant maps the config spelling of a variant to its constant.
// The empty string selects the default.
func ParseHashVariant(s string) (HashVariant, error) {
	switch s {
	case "", "sha3-512":
		return VariantSHA3512, nil
	case "sha-512":
		return VariantSHA512, nil
	default:
		return 0, fmt.Errorf("unknown hash variant %q", s)
	}
}

// Hasher turns hash input material into base-36 text. Implementations must
// be deterministic for the same input; tests substitute canned outputs.
type Hasher interface {
	Hash(input string) string
}

// NewHasher returns the production Hasher for the given variant.
func NewHasher(v HashVariant) Hasher {
	return digestHasher{variant: v}
}

// digestHasher computes a 512-bit digest, reinterprets it as one big
// integer, renders it in base 36, and drops the first character. The
// leading digit of a fixed-width value is biased toward low values, so it
// never reaches the output.
type digestHasher struct {
	variant HashVariant
}

func (h digestHasher) Hash(input string) string {
	var sum [64]byte
	if h.variant == VariantSHA512 {
		sum = sha512.Sum512([]byte(input))
	} else {
		sum = sha3.Sum512([]byte(input))
	}
	s := encodeBase36(new(big.Int).SetBytes(sum[:]))
	return s[1:]
}
