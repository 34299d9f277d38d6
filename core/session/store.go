package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for sessions.
// Implementations must be safe for concurrent use and must make Save atomic
// per session: a concurrent GetByToken sees either the old or the new state.
type Store interface {
	// GetByToken returns the session currently holding token, or ErrNotFound.
	// A token that was rotated away must not resolve.
	GetByToken(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes all expired sessions and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
