package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the two-variant tag derived from the profile's role column. Only
// the exact string "admin" maps to RoleAdmin; every other value, including
// the empty string, is treated as a standard user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "user"
)

// ParseRole derives the role tag from the stored role string.
func ParseRole(s string) Role {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleStandard
}

// Profile is the identity record associated with a session. Profiles are
// created out of band, never by the dashboard flow.
type Profile struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Role     Role      `json:"role" db:"role"`
}

// Account holds the credentials the auth provider checks on sign-in.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is the opaque handle the auth provider hands out on sign-in. The
// dashboard flow only checks presence and uses UserID to look up a profile;
// it never inspects the token.
type Session struct {
	Token     string    `json:"token" db:"token"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"-" db:"revoked"`
}
