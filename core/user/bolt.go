package user

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var (
	usersBucket  = []byte("users")
	emailsBucket = []byte("users_by_email")
)

// boltRecord is the stored form of a User.
type boltRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	RememberHash []byte    `json:"remember_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BoltRepository stores users in a bbolt database. Users are kept as JSON
// under their id, with a second bucket indexing ids by email.
type BoltRepository struct {
	db *bbolt.DB
}

var _ Repository = (*BoltRepository)(nil)

// NewBoltRepository wraps an open bbolt database, creating buckets as needed.
func NewBoltRepository(db *bbolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{usersBucket, emailsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &BoltRepository{db: db}, nil
}

// OpenBoltRepository opens (or creates) the database file at path.
func OpenBoltRepository(path string) (*BoltRepository, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	repo, err := NewBoltRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *BoltRepository) Close() error {
	return r.db.Close()
}

func (r *BoltRepository) Create(_ context.Context, u *User) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		emails := tx.Bucket(emailsBucket)
		if emails.Get([]byte(u.Email)) != nil {
			return ErrEmailTaken
		}
		prepare(u)
		if err := emails.Put([]byte(u.Email), u.ID[:]); err != nil {
			return err
		}
		return putUser(tx, u)
	})
}

func (r *BoltRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	var u *User
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		u, err = getUser(tx, id)
		return err
	})
	return u, err
}

func (r *BoltRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	var u *User
	err := r.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(emailsBucket).Get([]byte(email))
		if raw == nil {
			return ErrNotFound
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return fmt.Errorf("corrupt email index for %q: %w", email, err)
		}
		u, err = getUser(tx, id)
		return err
	})
	return u, err
}

func (r *BoltRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash []byte) error {
	return r.update(id, func(u *User) { u.PasswordHash = slices.Clone(hash) })
}

func (r *BoltRepository) UpdateRememberHash(_ context.Context, id uuid.UUID, hash []byte) error {
	return r.update(id, func(u *User) { u.RememberHash = slices.Clone(hash) })
}

func (r *BoltRepository) update(id uuid.UUID, fn func(*User)) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		u, err := getUser(tx, id)
		if err != nil {
			return err
		}
		fn(u)
		u.UpdatedAt = time.Now().UTC()
		return putUser(tx, u)
	})
}

func getUser(tx *bbolt.Tx, id uuid.UUID) (*User, error) {
	data := tx.Bucket(usersBucket).Get(id[:])
	if data == nil {
		return nil, ErrNotFound
	}
	var rec boltRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return &User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		RememberHash: rec.RememberHash,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

func putUser(tx *bbolt.Tx, u *User) error {
	data, err := json.Marshal(boltRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RememberHash: u.RememberHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return tx.Bucket(usersBucket).Put(u.ID[:], data)
}
