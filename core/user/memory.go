package user

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	prepare(u)
	r.byID[u.ID] = u.clone()
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u.clone(), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MemoryRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash []byte) error {
	return r.update(id, func(u *User) { u.PasswordHash = slices.Clone(hash) })
}

func (r *MemoryRepository) UpdateRememberHash(_ context.Context, id uuid.UUID, hash []byte) error {
	return r.update(id, func(u *User) { u.RememberHash = slices.Clone(hash) })
}

// update swaps in a modified copy so readers never observe a partial write.
func (r *MemoryRepository) update(id uuid.UUID, fn func(*User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	next := u.clone()
	fn(next)
	next.UpdatedAt = time.Now().UTC()
	r.byID[id] = next
	return nil
}

// Len returns the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
