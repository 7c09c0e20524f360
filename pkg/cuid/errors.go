package cuid

import "errors"

var (
	// ErrLengthExceeded is returned when a requested ID length is greater
	// than MaxLength. A single 512-bit digest cannot cover more characters.
	ErrLengthExceeded = errors.New("cuid: length exceeds maximum of 98")

	// ErrInvalidLength is returned when a requested length is below 1.
	ErrInvalidLength = errors.New("cuid: length must be at least 1")
)
