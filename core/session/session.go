package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/token"
)

// Session is the server-side state behind one browser session.
type Session struct {
	// ID is stable for the lifetime of the session.
	ID uuid.UUID `json:"id"`

	// Token is the opaque value the browser presents. It rotates on login
	// and on Refresh.
	Token string `json:"token"`

	// UserID is the logged-in user, uuid.Nil for anonymous sessions.
	UserID uuid.UUID `json:"user_id"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitzero"`

	isModified bool
	isNew      bool
}

// New creates an anonymous session with a fresh ID and token.
func New(ttl time.Duration) (Session, error) {
	tok, err := token.New()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:         uuid.New(),
		Token:      tok,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
		isNew:      true,
	}, nil
}

// CurrentUserID returns the logged-in user id, if any.
func (s *Session) CurrentUserID() (uuid.UUID, bool) {
	if s.IsDeleted() || s.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return s.UserID, true
}

// LogIn records userID as the session's user. Logging in the user that is
// already logged in changes nothing; switching users rotates the token.
// A session that was Reset earlier in the request is revived.
func (s *Session) LogIn(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNilUserID
	}
	if !s.IsDeleted() && s.UserID == userID {
		return nil
	}

	if err := s.rotateToken(); err != nil {
		return err
	}
	s.DeletedAt = time.Time{}
	s.UserID = userID
	s.UpdatedAt = time.Now()
	return nil
}

// Reset clears the user and marks the session for deletion.
func (s *Session) Reset() {
	s.UserID = uuid.Nil
	s.DeletedAt = time.Now()
	s.isModified = true
}

// Refresh rotates the token without changing the user.
func (s *Session) Refresh() error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Touch extends the expiration if touchInterval has elapsed since the last
// update. A zero interval touches on every call.
func (s *Session) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// IsAuthenticated reports whether a user is logged in.
func (s Session) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != "" && s.DeletedAt.IsZero()
}

// IsDeleted reports whether the session was Reset.
func (s Session) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session needs saving.
func (s Session) IsModified() bool {
	return s.isModified
}

// IsNew reports whether the session has never been saved.
func (s Session) IsNew() bool {
	return s.isNew
}

// IsExpired reports whether the session is past its expiration.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) markSaved() {
	s.isModified = false
	s.isNew = false
}

func (s *Session) rotateToken() error {
	tok, err := token.New()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = tok
	s.isModified = true
	return nil
}
