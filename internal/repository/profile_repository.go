package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blackat123/prosetup/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository defines the interface for profile data access. Exactly
// one profile row is expected per account id.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a new profile row. Profiles are only created out of band
// (seeding, registration), never by the dashboard flow.
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, username, role)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, profile.ID, profile.Username, string(profile.Role))
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// FindByUserID retrieves the profile belonging to an account id.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, username, role
		FROM profiles
		WHERE id = $1
	`

	var (
		profile domain.Profile
		role    string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Username,
		&role,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	profile.Role = domain.ParseRole(role)
	return &profile, nil
}
