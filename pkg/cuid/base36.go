package cuid

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// digits is the base-36 alphabet shared by every encoder in this package.
const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

var big36 = big.NewInt(36)

// encodeBase36 renders n as lowercase base-36 with no padding, so "0" for
// zero and "z" for 35. Callers only pass non-negative values; a negative n
// would carry a sign character that never appears in an ID.
func encodeBase36(n *big.Int) string {
	return n.Text(36)
}

// decodeBase36 is the inverse of encodeBase36. It accepts only the canonical
// lowercase alphabet; uppercase digits, signs, and empty input are rejected.
func decodeBase36(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("decode base36: empty input")
	}
	n := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(digits, s[i])
		if v < 0 {
			return nil, fmt.Errorf("decode base36: invalid digit %q at index %d", s[i], i)
		}
		n.Mul(n, big36)
		n.Add(n, d.SetInt64(int64(v)))
	}
	return n, nil
}
