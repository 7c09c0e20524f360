package cuid

import "math/big"

var bigOne = big.NewInt(1)

// Counter yields a strictly increasing sequence of arbitrary-precision
// integers, so the sequence never wraps no matter how long the process
// lives. It has no internal locking: a Counter belongs to one Generator and
// inherits its confinement.
type Counter struct {
	next *big.Int
}

// NewCounter returns a Counter whose first Next call yields initial.
func NewCounter(initial int64) *Counter {
	return &Counter{next: big.NewInt(initial)}
}

// Next returns the current count and advances the sequence. The returned
// value is a copy the caller may keep or mutate.
func (c *Counter) Next() *big.Int {
	v := new(big.Int).Set(c.next)
	c.next.Add(c.next, bigOne)
	return v
}
