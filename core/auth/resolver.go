package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/user"
	"github.com/dmitrymomot/authkit/pkg/token"
)

// SessionState is the session tier as the Resolver sees it.
// *session.Session implements it.
type SessionState interface {
	CurrentUserID() (uuid.UUID, bool)
	LogIn(userID uuid.UUID) error
	Reset()
}

// Resolver tracks the authenticated user of a single request.
// It is not safe for concurrent use.
type Resolver struct {
	auth  *Authenticator
	state SessionState
	jar   CookieJar

	resolved bool
	current  *user.User
}

// LogIn records u in the session tier.
func (r *Resolver) LogIn(u *user.User) error {
	if u == nil {
		return ErrNilUser
	}
	if err := r.state.LogIn(u.ID); err != nil {
		return err
	}
	r.current = u
	r.resolved = true
	return nil
}

// Remember issues a new remember token for u, stores its hash (replacing any
// earlier one) and writes the persistent cookie pair.
func (r *Resolver) Remember(ctx context.Context, u *user.User) error {
	if u == nil {
		return ErrNilUser
	}

	tok, err := token.New()
	if err != nil {
		return errors.Join(ErrRemember, err)
	}
	hash, err := r.auth.hasher.Hash(tok)
	if err != nil {
		return errors.Join(ErrRemember, err)
	}
	if err := r.auth.users.UpdateRememberHash(ctx, u.ID, hash); err != nil {
		return errors.Join(ErrRemember, err)
	}
	u.RememberHash = hash

	if err := r.jar.WriteIdentity(u.ID, tok); err != nil {
		return errors.Join(ErrRemember, err)
	}

	r.auth.log.DebugContext(ctx, "user remembered",
		logger.Component("auth"), logger.Event("remember"), logger.UserID(u.ID))
	return nil
}

// Forget clears u's remember hash and deletes the persistent cookies. A nil u
// only deletes the cookies. Forgetting twice leaves the same state as once.
func (r *Resolver) Forget(ctx context.Context, u *user.User) error {
	r.jar.ClearIdentity()
	if u == nil {
		return nil
	}

	if err := r.auth.users.UpdateRememberHash(ctx, u.ID, nil); err != nil && !errors.Is(err, user.ErrNotFound) {
		return errors.Join(ErrForget, err)
	}
	u.RememberHash = nil

	r.auth.log.DebugContext(ctx, "user forgotten",
		logger.Component("auth"), logger.Event("forget"), logger.UserID(u.ID))
	return nil
}

// LogOut forgets the current user and resets the session. Both tiers are
// cleared even when resolving the current user fails; the error is still
// returned. Logging out an anonymous caller is harmless.
func (r *Resolver) LogOut(ctx context.Context) error {
	current, err := r.CurrentUser(ctx)
	if err == nil {
		err = r.Forget(ctx, current)
	} else {
		r.jar.ClearIdentity()
	}

	r.state.Reset()
	r.current = nil
	r.resolved = true

	if current != nil {
		r.auth.log.InfoContext(ctx, "user logged out",
			logger.Component("auth"), logger.Event("logout"), logger.UserID(current.ID))
	}
	return err
}

// CurrentUser returns the authenticated user or nil for an anonymous caller.
func (r *Resolver) CurrentUser(ctx context.Context) (*user.User, error) {
	if r.resolved {
		return r.current, nil
	}

	u, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	r.current = u
	r.resolved = true
	return u, nil
}

// LoggedIn reports whether CurrentUser is non-nil.
func (r *Resolver) LoggedIn(ctx context.Context) (bool, error) {
	u, err := r.CurrentUser(ctx)
	return u != nil, err
}

// IsCurrentUser reports whether u is the authenticated user.
func (r *Resolver) IsCurrentUser(ctx context.Context, u *user.User) (bool, error) {
	if u == nil {
		return false, nil
	}
	current, err := r.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return current != nil && current.ID == u.ID, nil
}

func (r *Resolver) resolve(ctx context.Context) (*user.User, error) {
	if id, ok := r.state.CurrentUserID(); ok {
		return r.find(ctx, id)
	}

	id, tok, ok := r.jar.ReadIdentity()
	if !ok {
		return nil, nil
	}

	u, err := r.find(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}

	if !u.HasRememberHash() || !r.auth.hasher.Verify(tok, u.RememberHash) {
		r.auth.log.InfoContext(ctx, "remember token rejected",
			logger.Component("auth"), logger.Event("remember_login"), logger.Result("failure"), logger.UserID(id))
		return nil, nil
	}

	if err := r.state.LogIn(u.ID); err != nil {
		return nil, err
	}
	r.auth.log.InfoContext(ctx, "session restored from remember cookie",
		logger.Component("auth"), logger.Event("remember_login"), logger.Result("success"), logger.UserID(u.ID))
	return u, nil
}

// find maps a missing user to an anonymous result.
func (r *Resolver) find(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := r.auth.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Join(ErrLookupUser, err)
	}
	return u, nil
}
