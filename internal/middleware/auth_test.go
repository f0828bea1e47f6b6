package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
)

type stubSessions map[string]string

func (s stubSessions) Resolve(_ context.Context, token string) (string, error) {
	if token == "broken" {
		return "", errors.New("redis down")
	}
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", apperrors.ErrUnauthorized
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("bearer   abc "))
	assert.Empty(t, ExtractBearerToken("Basic abc"))
	assert.Empty(t, ExtractBearerToken("abc"))
	assert.Empty(t, ExtractBearerToken(""))
}

func TestRequireOwner(t *testing.T) {
	var seen string
	h := RequireOwner(stubSessions{"tok": "owner-1"}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = OwnerID(r.Context())
	}))

	cases := []struct {
		header string
		status int
		owner  string
	}{
		{"Bearer tok", http.StatusOK, "owner-1"},
		{"Bearer nope", http.StatusUnauthorized, ""},
		{"", http.StatusUnauthorized, ""},
		{"Bearer broken", http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code, tc.header)
		assert.Equal(t, tc.owner, seen, tc.header)
		if tc.status != http.StatusOK {
			assert.Contains(t, rec.Body.String(), `"success":false`)
		}
	}
}

func TestOwnerID_Missing(t *testing.T) {
	_, ok := OwnerID(context.Background())
	assert.False(t, ok)
	_, ok = OwnerID(WithOwnerID(context.Background(), ""))
	assert.False(t, ok)
}
