package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/authkit/core/logger"
)

// PasswordHasher hashes new passwords. *credential.Hasher satisfies it.
type PasswordHasher interface {
	Hash(secret string) ([]byte, error)
}

// Service registers users.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	log    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a Service.
func NewService(repo Repository, hasher PasswordHasher, opts ...ServiceOption) (*Service, error) {
	if hasher == nil {
		return nil, ErrNilHasher
	}
	s := &Service{repo: repo, hasher: hasher, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register validates p, hashes the password and stores the new user.
// Invalid input returns *ValidationError; a known email returns ErrEmailTaken.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	email := NormalizeEmail(p.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         strings.TrimSpace(p.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.Component("user"),
		logger.Event("register"),
		logger.UserID(u.ID),
	)
	return u, nil
}
