package token

import "errors"

var (
	// ErrTooShort is returned when the requested token size is below MinSize.
	ErrTooShort = errors.New("token: size too short")
	// ErrGeneration is returned when the random source fails.
	ErrGeneration = errors.New("token: failed to read random bytes")
)
