package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/gateway"
	"github.com/blackat123/prosetup/internal/middleware"
	"github.com/blackat123/prosetup/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductFormRequest carries the three raw form fields. Values arrive as
// text exactly as typed; the management view owns validation and parsing.
type ProductFormRequest struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  string `json:"quantity"`
}

// ProductHandler handles HTTP requests for the product views
type ProductHandler struct {
	store  *gateway.Store
	logger *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(store *gateway.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all product routes. Every route requires a
// session; the mutating routes and the management view additionally require
// the admin role.
func (h *ProductHandler) RegisterRoutes(r chi.Router, sessionMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Get("/", h.Listing)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Get("/manage", h.Management)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *ProductHandler) boundGateway(r *http.Request) *gateway.Store {
	token, _ := middleware.GetToken(r.Context())
	return h.store.WithToken(token)
}

// Listing serves the read-only product list, sorted by name.
func (h *ProductHandler) Listing(w http.ResponseWriter, r *http.Request) {
	listing := view.NewListingView(h.boundGateway(r), h.logger)
	defer listing.Dispose()

	listing.Load(r.Context())

	middleware.RespondWithJSON(w, http.StatusOK, listing.Snapshot())
}

// Management serves the admin view state, sorted newest first.
func (h *ProductHandler) Management(w http.ResponseWriter, r *http.Request) {
	mgmt := view.NewManagementView(h.boundGateway(r), h.logger, view.DefaultTransitionDuration)
	defer mgmt.Dispose()

	mgmt.Refresh(r.Context())

	middleware.RespondWithJSON(w, http.StatusOK, mgmt.Snapshot())
}

// Create submits the form in create mode. The response is always the
// resulting view state; the status code mirrors the form message.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mgmt := view.NewManagementView(h.boundGateway(r), h.logger, view.DefaultTransitionDuration)
	defer mgmt.Dispose()

	mgmt.SetDraft(domain.ProductDraft{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	mgmt.Submit(r.Context())

	state := mgmt.Snapshot()
	status := http.StatusCreated
	if state.Message.Kind == view.MessageError {
		status = http.StatusUnprocessableEntity
	}
	middleware.RespondWithJSON(w, status, state)
}

// Update submits the form in edit mode for the row in the path.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mgmt := view.NewManagementView(h.boundGateway(r), h.logger, view.DefaultTransitionDuration)
	defer mgmt.Dispose()

	mgmt.SetDraft(domain.ProductDraft{
		ID:        &id,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	mgmt.Submit(r.Context())

	state := mgmt.Snapshot()
	status := http.StatusOK
	if state.Message.Kind == view.MessageError {
		status = http.StatusUnprocessableEntity
	}
	middleware.RespondWithJSON(w, status, state)
}

// Delete runs the full confirm flow for the row in the path: request the
// deletion, then confirm it through the dialog.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	mgmt := view.NewManagementView(h.boundGateway(r), h.logger, view.DefaultTransitionDuration)
	defer mgmt.Dispose()

	mgmt.Refresh(r.Context())

	state := mgmt.Snapshot()
	if state.Err != "" {
		middleware.RespondWithJSON(w, http.StatusBadGateway, state)
		return
	}

	var target *domain.Product
	for i := range state.Rows {
		if state.Rows[i].Product.ID == id {
			target = &state.Rows[i].Product
			break
		}
	}
	if target == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	mgmt.RequestDelete(*target)
	mgmt.Dialog().Confirm()

	state = mgmt.Snapshot()
	if state.Err != "" {
		middleware.RespondWithJSON(w, http.StatusBadGateway, state)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, state)
}
