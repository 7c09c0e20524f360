package cuid

import (
	"crypto/rand"
	"encoding/binary"
)

// RandomSource supplies the randomness consumed during ID generation. The
// package default reads crypto/rand; tests substitute scripted sources to
// make generation fully deterministic.
type RandomSource interface {
	// UnitFloat returns the next random float64 in [0, 1).
	UnitFloat() float64
	// LowercaseLetter returns a random letter in 'a'..'z'.
	LowercaseLetter() byte
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// cryptoSource implements RandomSource over crypto/rand.
type cryptoSource struct{}

func (cryptoSource) UnitFloat() float64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	// Keep the top 53 bits so the value is uniform on [0, 1) at full
	// float64 precision.
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

func (s cryptoSource) LowercaseLetter() byte {
	return letters[int(s.UnitFloat()*26)]
}

// Entropy returns length random base-36 digits from the package's
// crypto/rand source. It fails with ErrInvalidLength when length < 1.
func Entropy(length int) (string, error) {
	return entropyFrom(cryptoSource{}, length)
}

// entropyFrom appends one digit per UnitFloat draw until the string is
// exactly length characters, so substituted sources see the same draw
// sequence regardless of how much entropy each draw carries.
func entropyFrom(src RandomSource, length int) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	b := make([]byte, 0, length)
	for len(b) < length {
		b = append(b, digits[int(src.UnitFloat()*36)])
	}
	return string(b), nil
}
