package web

import "errors"

var (
	ErrUnknownUserStore    = errors.New("unknown user store")
	ErrUnknownSessionStore = errors.New("unknown session store")
	ErrNilDependency       = errors.New("dependency cannot be nil")
)
