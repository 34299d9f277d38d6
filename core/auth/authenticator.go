package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authkit/core/credential"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/user"
)

// Authenticator holds the process-wide dependencies of authentication and
// creates a Resolver per request. It is safe for concurrent use.
type Authenticator struct {
	users  user.Repository
	hasher *credential.Hasher
	log    *slog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger for authentication events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an Authenticator.
func New(users user.Repository, hasher *credential.Hasher, opts ...Option) (*Authenticator, error) {
	if users == nil {
		return nil, ErrNilRepository
	}
	if hasher == nil {
		return nil, ErrNilHasher
	}

	dummy, err := hasher.Hash("authkit-timing-equalizer")
	if err != nil {
		return nil, err
	}

	a := &Authenticator{
		users:     users,
		hasher:    hasher,
		log:       logger.Discard(),
		dummyHash: dummy,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Authenticate checks an email and password pair. An unknown email and a
// wrong password both return ErrInvalidCredentials. A matching password whose
// hash uses an outdated cost is rehashed.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := a.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			a.hasher.Verify(password, a.dummyHash)
			a.log.InfoContext(ctx, "login failed",
				logger.Component("auth"), logger.Event("login"), logger.Result("failure"))
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Join(ErrLookupUser, err)
	}

	if !a.hasher.Verify(password, u.PasswordHash) {
		a.log.InfoContext(ctx, "login failed",
			logger.Component("auth"), logger.Event("login"), logger.Result("failure"), logger.UserID(u.ID))
		return nil, ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(u.PasswordHash) {
		a.rehash(ctx, u, password)
	}

	a.log.InfoContext(ctx, "login succeeded",
		logger.Component("auth"), logger.Event("login"), logger.Result("success"), logger.UserID(u.ID))
	return u, nil
}

// rehash upgrades the stored password hash. Failures only cost the upgrade.
func (a *Authenticator) rehash(ctx context.Context, u *user.User, password string) {
	hash, err := a.hasher.Hash(password)
	if err == nil {
		err = a.users.UpdatePasswordHash(ctx, u.ID, hash)
	}
	if err != nil {
		a.log.WarnContext(ctx, "password rehash failed",
			logger.Component("auth"), logger.UserID(u.ID), logger.Error(err))
		return
	}
	u.PasswordHash = hash
}

// NewResolver creates the Resolver for one request.
func (a *Authenticator) NewResolver(state SessionState, jar CookieJar) *Resolver {
	return &Resolver{auth: a, state: state, jar: jar}
}
