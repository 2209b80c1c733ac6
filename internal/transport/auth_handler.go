package transport

import (
	"net/http"

	"github.com/blackat123/prosetup/internal/gateway"
	"github.com/blackat123/prosetup/internal/middleware"
	"github.com/blackat123/prosetup/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SignInRequest represents the sign-in request payload
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse carries the opaque session token the client presents as a
// bearer token on every later request.
type SignInResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	store  *gateway.Store
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(store *gateway.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler, rateLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if rateLimiter != nil {
				r.Use(rateLimiter)
			}
			r.Post("/signin", h.SignIn)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware)
			r.Post("/signout", h.SignOut)
		})
	})
}

// SignIn handles credential sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sign-in validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bound := h.store.WithToken("")
	if err := bound.SignInWithPassword(r.Context(), req.Email, req.Password); err != nil {
		h.logger.Debug("Sign-in failed", zap.Error(err))

		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	h.logger.Info("User signed in successfully")
	middleware.RespondWithJSON(w, http.StatusOK, SignInResponse{Token: bound.Token()})
}

// SignOut revokes the caller's session. Revoking an already dead session is
// still a success: the client redirects to sign-in either way.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.store.WithToken(token).SignOut(r.Context())

	h.logger.Info("User signed out successfully")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "signed out successfully"})
}
