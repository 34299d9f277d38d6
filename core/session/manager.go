package session

import (
	"context"
	"errors"
	"time"
)

// Manager handles session lifecycle including creation, retrieval, and expiration.
// The touchInterval determines how often sessions are automatically extended on access,
// reducing write operations to the store.
type Manager struct {
	store         Store
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Manager{
		store:         store,
		ttl:           cfg.TTL,
		touchInterval: cfg.TouchInterval,
	}
}

// NewFromConfig creates a session manager from environment configuration.
func NewFromConfig(cfg Config, store Store) *Manager {
	return NewManager(store, WithTTL(cfg.TTL), WithTouchInterval(cfg.TouchInterval))
}

// New creates a fresh anonymous session.
func (m *Manager) New() (Session, error) {
	return New(m.ttl)
}

// Load returns the session holding token. A missing, unknown or expired
// token yields a fresh anonymous session; only store failures are errors.
func (m *Manager) Load(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return m.New()
	}

	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return m.New()
		}
		return Session{}, err
	}

	if sess.IsExpired() || sess.IsDeleted() {
		return m.New()
	}

	return *sess, nil
}

// Store persists sess according to its state: a Reset session is deleted,
// anything else is touched and saved when modified.
func (m *Manager) Store(ctx context.Context, sess *Session) error {
	if sess.IsDeleted() {
		if sess.IsNew() {
			return nil
		}
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return nil
	}

	sess.Touch(m.ttl, m.touchInterval)
	if !sess.IsModified() {
		return nil
	}

	saved := *sess
	saved.markSaved()
	if err := m.store.Save(ctx, &saved); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	sess.markSaved()
	return nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent unbounded store growth.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
