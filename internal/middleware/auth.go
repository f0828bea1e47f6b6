package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
)

type ctxKey int

const ownerIDKey ctxKey = iota

// SessionResolver maps a bearer token to an owner id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header.
func ExtractBearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireOwner resolves the bearer session and stores the owner id in the
// request context. Requests without a valid session get 401.
func RequireOwner(sessions SessionResolver, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := sessions.Resolve(r.Context(), ExtractBearerToken(r.Header.Get("Authorization")))
			if err != nil {
				status, msg := http.StatusUnauthorized, "Authentication required"
				if !errors.Is(err, apperrors.ErrUnauthorized) {
					log.Error("session lookup failed", zap.Error(err))
					status, msg = http.StatusInternalServerError, "Failed to verify session"
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
		})
	}
}

// WithOwnerID returns a copy of ctx carrying ownerID.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// OwnerID returns the owner id stored by RequireOwner.
func OwnerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDKey).(string)
	return id, ok && id != ""
}
