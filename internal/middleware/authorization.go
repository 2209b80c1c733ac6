package middleware

import (
	"context"
	"net/http"

	"github.com/blackat123/prosetup/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileResolver looks up the profile for an account id. The role lives in
// the profiles table, not in the session token, so authorization always goes
// through a profile fetch.
type ProfileResolver interface {
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// RequireAdmin middleware ensures the caller's profile carries the admin
// role. It expects SessionMiddleware to have run first.
func RequireAdmin(profiles ProfileResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				logger.Warn("Session not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			profile, err := profiles.Profile(r.Context(), session.UserID)
			if err != nil {
				logger.Warn("Failed to resolve profile for authorization",
					zap.String("user_id", session.UserID.String()),
					zap.Error(err),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if profile.Role != domain.RoleAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("role", string(profile.Role)),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
