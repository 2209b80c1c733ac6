package service

import (
	"context"
	"fmt"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/repository"

	"go.uber.org/zap"
)

type demoAccount struct {
	email    string
	password string
	username string
	role     domain.Role
}

var demoAccounts = []demoAccount{
	{email: "admin@example.com", password: "password123", username: "admin", role: domain.RoleAdmin},
	{email: "user@example.com", password: "password123", username: "user", role: domain.RoleStandard},
}

// SeedDemoAccounts registers the built-in demo accounts. Accounts that
// already exist are left untouched, so the call is safe on every startup.
func SeedDemoAccounts(ctx context.Context, auth AuthService, logger *zap.Logger) error {
	for _, acc := range demoAccounts {
		_, err := auth.Register(ctx, acc.email, acc.password, acc.username, acc.role)
		if err == repository.ErrAccountAlreadyExists {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", acc.email, err)
		}
		logger.Info("Seeded demo account",
			zap.String("email", acc.email),
			zap.String("role", string(acc.role)),
		)
	}
	return nil
}
