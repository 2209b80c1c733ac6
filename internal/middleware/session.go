package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blackat123/prosetup/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenKey   contextKey = "session_token"
)

// SessionResolver resolves an opaque bearer token to its live session.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
}

// SessionMiddleware extracts the bearer token, resolves it to a session, and
// stores both in the request context. The token is never inspected here; the
// auth provider owns its meaning.
func SessionMiddleware(resolver SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			token := parts[1]

			session, err := resolver.CurrentSession(r.Context(), token)
			if err != nil {
				logger.Debug("Session resolution failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			ctx = context.WithValue(ctx, TokenKey, token)

			logger.Debug("Session resolved",
				zap.String("user_id", session.UserID.String()),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the resolved session from the request context.
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok
}

// GetToken extracts the raw bearer token from the request context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
