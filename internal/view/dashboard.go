package view

import (
	"context"
	"sync"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/gateway"

	"go.uber.org/zap"
)

// ProfileUnavailableMessage is the defensive placeholder shown when loading
// finished without a profile. Given the gate's redirect rules it should be
// unreachable.
const ProfileUnavailableMessage = "Failed to load profile. Please try again."

// DashboardState is the shell's render state.
type DashboardState struct {
	Loading     bool        `json:"loading"`
	Redirect    bool        `json:"redirect"`
	Placeholder string      `json:"placeholder,omitempty"`
	Username    string      `json:"username,omitempty"`
	Role        domain.Role `json:"role,omitempty"`
	// Admin selects the management view; everything else gets the
	// read-only listing.
	Admin bool `json:"admin"`
}

// Dashboard is the session gate and shell: it resolves the caller's session
// and profile, redirects unauthenticated callers to sign-in, and picks the
// management or listing view by role.
type Dashboard struct {
	mu sync.Mutex

	gw     gateway.Gateway
	logger *zap.Logger

	loading  bool
	redirect bool
	profile  *domain.Profile
	disposed bool
}

// NewDashboard creates a dashboard shell over the given gateway handle.
func NewDashboard(gw gateway.Gateway, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		gw:      gw,
		logger:  logger,
		loading: true,
	}
}

// Resolve runs the session gate: current session, then the profile lookup.
// A missing or unreadable session redirects to sign-in. An unreadable
// profile is treated as an invalid session rather than a transient fault:
// the gate forces a sign-out and redirects, with no retry.
func (d *Dashboard) Resolve(ctx context.Context) {
	session, err := d.gw.CurrentSession(ctx)
	if err != nil || session == nil {
		if err != nil {
			d.logger.Debug("Session resolution failed", zap.Error(err))
		}
		d.mu.Lock()
		if !d.disposed {
			d.redirect = true
			d.loading = false
		}
		d.mu.Unlock()
		return
	}

	profile, err := d.gw.Profile(ctx, session.UserID)

	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}

	if err != nil {
		d.logger.Warn("Failed to fetch profile, treating session as invalid",
			zap.String("user_id", session.UserID.String()),
			zap.Error(err),
		)
		d.redirect = true
		d.loading = false
		d.mu.Unlock()

		d.gw.SignOut(ctx)
		return
	}

	d.profile = profile
	d.loading = false
	d.mu.Unlock()
}

// SignOut revokes the session and redirects to sign-in unconditionally.
func (d *Dashboard) SignOut(ctx context.Context) {
	d.gw.SignOut(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.redirect = true
	d.profile = nil
}

// Profile returns the resolved profile, nil before Resolve completes or
// after a redirect.
func (d *Dashboard) Profile() *domain.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile
}

// Admin reports whether the role gate selects the management view. Only the
// exact role "admin" qualifies.
func (d *Dashboard) Admin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile != nil && d.profile.Role == domain.RoleAdmin
}

// Dispose marks the shell dead; late gate results are discarded silently.
func (d *Dashboard) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disposed = true
}

// Snapshot returns the current render state.
func (d *Dashboard) Snapshot() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := DashboardState{
		Loading:  d.loading,
		Redirect: d.redirect,
	}
	if state.Loading || state.Redirect {
		return state
	}

	if d.profile == nil {
		state.Placeholder = ProfileUnavailableMessage
		return state
	}

	state.Username = d.profile.Username
	state.Role = d.profile.Role
	state.Admin = d.profile.Role == domain.RoleAdmin
	return state
}
