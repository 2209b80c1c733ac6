package view

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/gateway"

	"github.com/google/uuid"
)

// fakeGateway is an in-memory Gateway for driving the views in tests. It
// records every data-access call so tests can assert that an operation
// issued no calls at all.
type fakeGateway struct {
	mu sync.Mutex

	products map[int64]domain.Product
	nextID   int64

	session  *domain.Session
	profiles map[uuid.UUID]*domain.Profile

	sessionErr error
	profileErr error
	listErr    error
	insertErr  error
	updateErr  error
	deleteErr  error

	calls      []string
	signedOut  bool
	signOutErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		products: make(map[int64]domain.Product),
		nextID:   1,
		profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

func (f *fakeGateway) record(op string) {
	f.calls = append(f.calls, op)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) seedProduct(name string, unitPrice, quantity int64) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := domain.Product{
		ID:        f.nextID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		CreatedAt: time.Now().Add(time.Duration(f.nextID) * time.Millisecond),
	}
	f.products[p.ID] = p
	f.nextID++
	return p
}

func (f *fakeGateway) seedSession(role domain.Role, username string) *domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	userID := uuid.New()
	f.session = &domain.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.profiles[userID] = &domain.Profile{
		ID:       userID,
		Username: username,
		Role:     role,
	}
	return f.session
}

func (f *fakeGateway) ListProducts(ctx context.Context, order gateway.ProductOrder) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list")

	if f.listErr != nil {
		return nil, f.listErr
	}

	products := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}

	switch order {
	case gateway.OrderByNameAsc:
		sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	default:
		sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
	return products, nil
}

func (f *fakeGateway) InsertProduct(ctx context.Context, rec gateway.ProductRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("insert")

	if f.insertErr != nil {
		return f.insertErr
	}

	p := domain.Product{
		ID:        f.nextID,
		Name:      rec.Name,
		UnitPrice: rec.UnitPrice,
		Quantity:  rec.Quantity,
		CreatedAt: time.Now().Add(time.Duration(f.nextID) * time.Millisecond),
	}
	f.products[p.ID] = p
	f.nextID++
	return nil
}

func (f *fakeGateway) UpdateProduct(ctx context.Context, id int64, rec gateway.ProductRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update")

	if f.updateErr != nil {
		return f.updateErr
	}

	p, ok := f.products[id]
	if !ok {
		return errors.New("product not found")
	}
	p.Name = rec.Name
	p.UnitPrice = rec.UnitPrice
	p.Quantity = rec.Quantity
	f.products[id] = p
	return nil
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete")

	if f.deleteErr != nil {
		return f.deleteErr
	}

	if _, ok := f.products[id]; !ok {
		return errors.New("product not found")
	}
	delete(f.products, id)
	return nil
}

func (f *fakeGateway) SignInWithPassword(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("signin")
	return nil
}

func (f *fakeGateway) CurrentSession(ctx context.Context) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("session")

	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session == nil {
		return nil, errors.New("invalid session")
	}
	return f.session, nil
}

func (f *fakeGateway) SignOut(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("signout")
	f.signedOut = true
	f.session = nil
}

func (f *fakeGateway) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("profile")

	if f.profileErr != nil {
		return nil, f.profileErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return profile, nil
}
