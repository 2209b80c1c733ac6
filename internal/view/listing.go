package view

import (
	"context"
	"sync"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/gateway"

	"go.uber.org/zap"
)

// EmptyListingPlaceholder is shown when a listing holds no rows.
const EmptyListingPlaceholder = "No products available."

// ProductRow is one rendered table row.
type ProductRow struct {
	Product    domain.Product `json:"product"`
	PriceLabel string         `json:"price_label"`
}

func renderRows(products []domain.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			Product:    p,
			PriceLabel: domain.FormatRupiah(p.UnitPrice),
		})
	}
	return rows
}

// ListingState is the read-only listing's render state. Exactly one of
// Loading, Err and the row content applies at a time.
type ListingState struct {
	Loading     bool         `json:"loading"`
	Err         string       `json:"error,omitempty"`
	Rows        []ProductRow `json:"rows"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// ListingView fetches and renders all product rows ascending by name. It
// issues a single list call on load and offers no further interaction.
type ListingView struct {
	mu sync.Mutex

	gw     gateway.Gateway
	logger *zap.Logger

	loading  bool
	loadErr  string
	rows     []domain.Product
	disposed bool
}

// NewListingView creates a listing view over the given gateway handle.
func NewListingView(gw gateway.Gateway, logger *zap.Logger) *ListingView {
	return &ListingView{
		gw:      gw,
		logger:  logger,
		loading: true,
	}
}

// Load issues the one list call, ordered by name ascending. A provider
// failure replaces the table with the error message; it does not affect the
// rest of the dashboard.
func (v *ListingView) Load(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.loadErr = ""
	v.mu.Unlock()

	products, err := v.gw.ListProducts(ctx, gateway.OrderByNameAsc)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}

	if err != nil {
		v.logger.Error("Failed to load product listing", zap.Error(err))
		v.loadErr = err.Error()
	} else {
		v.rows = products
	}
	v.loading = false
}

// Dispose marks the view dead; results of in-flight loads are discarded
// silently afterwards.
func (v *ListingView) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disposed = true
}

// Snapshot returns the current render state.
func (v *ListingView) Snapshot() ListingState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := ListingState{
		Loading: v.loading,
		Err:     v.loadErr,
	}
	if state.Loading || state.Err != "" {
		return state
	}

	state.Rows = renderRows(v.rows)
	if len(state.Rows) == 0 {
		state.Placeholder = EmptyListingPlaceholder
	}
	return state
}
