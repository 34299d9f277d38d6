package credential

import "errors"

var (
	// ErrInvalidCost is returned when the configured cost is outside bcrypt bounds.
	ErrInvalidCost = errors.New("credential: invalid bcrypt cost")
	// ErrEmptySecret is returned when hashing an empty secret.
	ErrEmptySecret = errors.New("credential: secret is empty")
	// ErrSecretTooLong is returned when the secret exceeds bcrypt's input limit.
	ErrSecretTooLong = errors.New("credential: secret exceeds 72 bytes")
	// ErrHashFailed wraps unexpected bcrypt failures.
	ErrHashFailed = errors.New("credential: failed to hash secret")
)
