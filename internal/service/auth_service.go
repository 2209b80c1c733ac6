package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// SessionExpiration is the default session lifetime
	SessionExpiration = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session has expired")
)

// AuthService is the session-based auth provider: it checks credentials,
// mints opaque session tokens, and resolves tokens back to sessions and
// profiles. The rest of the application never looks inside a token.
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.Account, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = SessionExpiration
	}
	return &authService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// SignInWithPassword authenticates an account and opens a new session.
func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrAccountNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    account.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
		Revoked:   false,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// CurrentSession resolves a token to its live session. Unknown and revoked
// tokens report ErrInvalidSession; expired tokens report ErrSessionExpired.
func (s *authService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if err == repository.ErrSessionNotFound || err == repository.ErrSessionRevoked {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// SignOut revokes a session. A token that no longer exists is treated as
// already signed out.
func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := s.sessionRepo.Revoke(ctx, token); err != nil {
		if err == repository.ErrSessionNotFound {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Register creates an account with a hashed password plus its profile row.
// The dashboard flow never calls this; it exists for seeding and tests.
func (s *authService) Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.Account, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrAccountNotFound {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrAccountAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	profile := &domain.Profile{
		ID:       account.ID,
		Username: username,
		Role:     role,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return account, nil
}

// Profile retrieves the profile belonging to an account id.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrProfileNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
