package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrIncompleteTLSConfig  = errors.New("both TLS certificate and key files are required")
	ErrFailedLoadCert       = errors.New("failed to load TLS certificate")
)
