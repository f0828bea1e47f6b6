package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
)

func TestSessionStore_Resolve(t *testing.T) {
	s, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, s.Set(SessionKeyPrefix+"tok-1", "user-1"))
	s.SetTTL(SessionKeyPrefix+"tok-1", time.Hour)
	require.NoError(t, s.Set(SessionKeyPrefix+"blank", "  "))

	owner, err := store.Resolve(ctx, " tok-1 ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	for _, token := range []string{"", "unknown", "blank"} {
		_, err := store.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "token %q", token)
	}

	s.FastForward(2 * time.Hour)
	_, err = store.Resolve(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionStore_RedisDown(t *testing.T) {
	s, client := newTestRedis(t)
	store := NewSessionStore(client)
	s.Close()

	_, err := store.Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
}
