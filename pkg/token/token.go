package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// DefaultSize is the number of random bytes used by New.
	DefaultSize = 32
	// MinSize is the smallest accepted token size in bytes.
	MinSize = 16
)

// New returns a DefaultSize random token encoded as base64url without padding.
func New() (string, error) {
	return Generate(DefaultSize)
}

// MustNew is like New but panics if the random source fails.
func MustNew() string {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Generate returns a token built from size random bytes.
func Generate(size int) (string, error) {
	if size < MinSize {
		return "", fmt.Errorf("%w: got %d bytes, need at least %d", ErrTooShort, size, MinSize)
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// EncodedLen reports the length of a token generated from size bytes.
func EncodedLen(size int) int {
	return base64.RawURLEncoding.EncodedLen(size)
}
