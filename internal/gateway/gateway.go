// Package gateway defines the data-access handle the dashboard flow is built
// against: generic row operations on the product table plus session and
// profile operations from the auth provider. Views receive a Gateway as an
// injected dependency, never a process-wide singleton, so tests can swap in
// a fake.
package gateway

import (
	"context"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/repository"

	"github.com/google/uuid"
)

// ProductOrder selects the listing order a view requests.
type ProductOrder = repository.ProductOrder

const (
	OrderByNameAsc     = repository.OrderByNameAsc
	OrderByCreatedDesc = repository.OrderByCreatedDesc
)

// ProductRecord carries the editable columns of a product row.
type ProductRecord = repository.ProductRecord

// Gateway is the contract every view consumes. All operations are
// request/response; any of them can fail with a provider-defined message,
// and the caller's only obligation is to surface that message. The handle is
// bound to at most one session at a time.
type Gateway interface {
	ListProducts(ctx context.Context, order ProductOrder) ([]domain.Product, error)
	InsertProduct(ctx context.Context, rec ProductRecord) error
	UpdateProduct(ctx context.Context, id int64, rec ProductRecord) error
	DeleteProduct(ctx context.Context, id int64) error

	SignInWithPassword(ctx context.Context, email, password string) error
	CurrentSession(ctx context.Context) (*domain.Session, error)
	SignOut(ctx context.Context)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}
