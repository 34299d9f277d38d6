// Package token generates opaque, URL-safe random tokens.
//
// Tokens are drawn from crypto/rand and encoded with base64url without padding,
// so they can be placed in cookies, query strings and headers as is. They carry
// no payload and cannot be verified on their own: callers store a one-way hash
// of the token server-side and compare against it later.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/authkit/pkg/token"
//
//	// 256-bit token
//	tok, err := token.New()
//	if err != nil {
//		// entropy source failed
//	}
//
//	// Custom size in bytes (at least MinSize)
//	short, err := token.Generate(16)
//
// # Security Notes
//
// DefaultSize is 32 bytes (256 bits). Sizes below MinSize (16 bytes, 128 bits)
// are rejected with ErrTooShort because they make offline brute force
// practical against a leaked hash.
package token
