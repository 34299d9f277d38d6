package user

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	RememberHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRememberHash reports whether a persistent login is active.
func (u *User) HasRememberHash() bool {
	return len(u.RememberHash) > 0
}

func (u *User) clone() *User {
	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.RememberHash = slices.Clone(u.RememberHash)
	return &c
}

// Repository persists users. Lookups that match nothing return ErrNotFound.
// Updates replace the stored value in a single write so concurrent readers
// see either the old or the new hash.
type Repository interface {
	// Create stores u, assigning ID and timestamps when unset.
	// A duplicate email returns ErrEmailTaken.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error
	// UpdateRememberHash overwrites the remember hash. A nil hash clears it.
	UpdateRememberHash(ctx context.Context, id uuid.UUID, hash []byte) error
}

// prepare fills the fields Create is responsible for.
func prepare(u *User) {
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
}
