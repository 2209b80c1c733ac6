package gateway

import (
	"context"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/repository"
	"github.com/blackat123/prosetup/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the production Gateway: product rows live in Postgres behind
// ProductRepository, sessions and profiles behind AuthService. A Store is
// cheap to copy; WithToken binds a copy to one caller's session.
type Store struct {
	products repository.ProductRepository
	auth     service.AuthService
	logger   *zap.Logger
	token    string
}

// NewStore creates an unbound Store handle.
func NewStore(products repository.ProductRepository, auth service.AuthService, logger *zap.Logger) *Store {
	return &Store{
		products: products,
		auth:     auth,
		logger:   logger,
	}
}

// WithToken returns a copy of the handle bound to the given session token.
func (g *Store) WithToken(token string) *Store {
	bound := *g
	bound.token = token
	return &bound
}

// Token exposes the currently bound session token, empty when signed out.
func (g *Store) Token() string {
	return g.token
}

// ListProducts returns every product row in the requested order.
func (g *Store) ListProducts(ctx context.Context, order ProductOrder) ([]domain.Product, error) {
	return g.products.List(ctx, order)
}

// InsertProduct creates a new product row.
func (g *Store) InsertProduct(ctx context.Context, rec ProductRecord) error {
	return g.products.Insert(ctx, rec)
}

// UpdateProduct rewrites the row with the given id.
func (g *Store) UpdateProduct(ctx context.Context, id int64, rec ProductRecord) error {
	return g.products.Update(ctx, id, rec)
}

// DeleteProduct removes the row with the given id.
func (g *Store) DeleteProduct(ctx context.Context, id int64) error {
	return g.products.Delete(ctx, id)
}

// SignInWithPassword opens a session and binds the handle to it.
func (g *Store) SignInWithPassword(ctx context.Context, email, password string) error {
	session, err := g.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}
	g.token = session.Token
	return nil
}

// CurrentSession resolves the bound token to its session.
func (g *Store) CurrentSession(ctx context.Context) (*domain.Session, error) {
	return g.auth.CurrentSession(ctx, g.token)
}

// SignOut revokes the bound session and unbinds the handle. A revocation
// failure is only logged: the caller redirects to sign-in either way.
func (g *Store) SignOut(ctx context.Context) {
	if g.token == "" {
		return
	}
	if err := g.auth.SignOut(ctx, g.token); err != nil {
		g.logger.Warn("Failed to revoke session on sign-out", zap.Error(err))
	}
	g.token = ""
}

// Profile looks up the profile for an account id.
func (g *Store) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return g.auth.Profile(ctx, userID)
}
