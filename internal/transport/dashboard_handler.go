package transport

import (
	"net/http"

	"github.com/blackat123/prosetup/internal/gateway"
	"github.com/blackat123/prosetup/internal/middleware"
	"github.com/blackat123/prosetup/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DashboardHandler serves the post-sign-in shell: it resolves the caller's
// session and profile and tells the client which view to render.
type DashboardHandler struct {
	store  *gateway.Store
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(store *gateway.Store, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/api/dashboard", h.Resolve)
	})
}

// Resolve runs the session gate and returns the shell state. A redirect
// flag, not an error status, sends the client back to sign-in; the gate's
// outcome is render state, never a transport failure.
func (h *DashboardHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetToken(r.Context())

	shell := view.NewDashboard(h.store.WithToken(token), h.logger)
	defer shell.Dispose()

	shell.Resolve(r.Context())

	middleware.RespondWithJSON(w, http.StatusOK, shell.Snapshot())
}
