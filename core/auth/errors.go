package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email/password combination")

	ErrNilRepository = errors.New("auth: nil user repository")
	ErrNilHasher     = errors.New("auth: nil credential hasher")
	ErrNilUser       = errors.New("auth: nil user")
	ErrLookupUser    = errors.New("auth: failed to look up user")
	ErrRemember      = errors.New("auth: failed to remember user")
	ErrForget        = errors.New("auth: failed to forget user")
)
