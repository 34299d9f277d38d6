// Package cookie reads and writes HTTP cookies in three flavours: plain,
// signed (tamper-evident, readable) and encrypted (confidential and
// tamper-evident).
//
// Every configured secret is expanded with HKDF-SHA256 into a signing key and
// an XChaCha20-Poly1305 key. Writes use the first secret; reads try all of
// them, so secrets can be rotated by prepending a new one. Signatures and
// ciphertexts are bound to the cookie name, so a value minted for one cookie
// is rejected under another.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//
//	// Encrypted, 20-year cookie
//	err = m.SetEncrypted(w, "user_id", id.String(), cookie.WithPermanent())
//
//	value, err := m.GetEncrypted(r, "user_id")
//	if errors.Is(err, cookie.ErrDecryptionFailed) {
//		// tampered or signed with a retired secret: treat as absent
//	}
//
//	m.Delete(w, "user_id")
//
// NewFromConfig builds a Manager from Config (COOKIE_* variables). Secure
// defaults are Path "/", HttpOnly and SameSite=Lax.
package cookie
