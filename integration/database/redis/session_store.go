package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/core/session"
)

// SessionStore keeps sessions in Redis as JSON, expiring with the session.
//
// Two keys exist per session: the session itself under its id, and a token
// index pointing at the id. A rotated token's index entry is left to expire;
// GetByToken rejects it because the stored session carries the new token.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore. Keys are prefixed with prefix.
func NewSessionStore(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) sessionKey(id uuid.UUID) string {
	return s.prefix + "session:" + id.String()
}

func (s *SessionStore) tokenKey(token string) string {
	return s.prefix + "session_token:" + token
}

func (s *SessionStore) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	rawID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get token: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, session.ErrNotFound
	}

	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Token != token {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		err := s.Delete(ctx, sess.ID)
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(sess.ID), data, ttl)
		pipe.Set(ctx, s.tokenKey(sess.Token), sess.ID.String(), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(id), s.tokenKey(sess.Token))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (s *SessionStore) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

func (s *SessionStore) get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}
