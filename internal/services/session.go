package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
)

const (
	// SessionKeyPrefix is the Redis key prefix for sessions written by the identity service
	SessionKeyPrefix = "session:"
)

// SessionStore resolves bearer tokens to owner ids. Sessions are issued
// elsewhere; this side only reads them.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Resolve returns the owner id stored for token, or ErrUnauthorized.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ErrUnauthorized
	}

	ownerID, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("%w: session lookup: %v", apperrors.ErrPersistence, err)
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return ownerID, nil
}
