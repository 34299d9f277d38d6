// Package credential hashes and verifies login secrets with bcrypt.
//
// A Hasher is constructed once with an explicit cost factor and shared by the
// whole process. It is used for two independent secrets: account passwords and
// remember-me tokens. Each secret gets its own hash; a password hash is never
// consulted when verifying a token and vice versa.
//
// # Usage
//
//	h, err := credential.New(credential.Config{Cost: 12})
//	if err != nil {
//		// cost outside bcrypt bounds
//	}
//
//	hash, err := h.Hash("s3cret-password")
//	ok := h.Verify("s3cret-password", hash) // true
//	ok = h.Verify("anything", nil)          // always false
//
// # Cost
//
// The cost factor is configuration, not environment sensing. Production uses
// Config loaded from BCRYPT_COST (default 12). Test suites construct the
// hasher with bcrypt.MinCost through NewForTesting so that hashing stays fast.
package credential
