package view

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/blackat123/prosetup/internal/domain"
	"github.com/blackat123/prosetup/internal/gateway"

	"go.uber.org/zap"
)

// Form field names, matching the three inputs of the product form.
const (
	FieldName      = "name"
	FieldUnitPrice = "unit_price"
	FieldQuantity  = "quantity"
)

// Status message texts.
const (
	MsgAllFieldsRequired = "All fields must be filled in!"
	MsgProductAdded      = "Product added successfully!"
	MsgProductUpdated    = "Product updated successfully!"

	// EmptyManagementPlaceholder invites the admin to add the first row.
	EmptyManagementPlaceholder = "No products available. Please add a new product."
)

// MessageKind tags the transient form status message.
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// FormMessage is the transient status line under the product form.
type FormMessage struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// ManagementState is the management view's render state.
type ManagementState struct {
	Loading     bool                `json:"loading"`
	Err         string              `json:"error,omitempty"`
	Rows        []ProductRow        `json:"rows"`
	Placeholder string              `json:"placeholder,omitempty"`
	Editing     bool                `json:"editing"`
	Draft       domain.ProductDraft `json:"-"`
	Message     FormMessage         `json:"message"`
	Dialog      DialogState         `json:"-"`
	DialogName  string              `json:"dialog_subject,omitempty"`
}

// ManagementView is the admin's create/update/delete surface: a form bound
// to a draft, an editable table of all rows, and a confirmation dialog for
// deletes. Every successful mutation re-fetches the full row set rather than
// patching local state, so the table always matches the store.
type ManagementView struct {
	mu sync.Mutex

	gw     gateway.Gateway
	logger *zap.Logger

	rows    []domain.Product
	loading bool
	loadErr string

	draft   domain.ProductDraft
	message FormMessage

	dialog        *ConfirmDialog
	pendingDelete *domain.Product

	scrollToTop bool
	disposed    bool

	// lifetime context backs the dialog's confirm callback; cancelled on
	// Dispose so a confirm cannot act on a dead view.
	lifeCtx  context.Context
	lifeStop context.CancelFunc
}

// NewManagementView creates a management view over the given gateway handle.
// The transition duration feeds the confirmation dialog; zero selects the
// default.
func NewManagementView(gw gateway.Gateway, logger *zap.Logger, transition time.Duration) *ManagementView {
	v := &ManagementView{
		gw:      gw,
		logger:  logger,
		loading: true,
	}
	v.lifeCtx, v.lifeStop = context.WithCancel(context.Background())
	v.dialog = NewConfirmDialog(transition,
		func() { v.ConfirmDelete(v.lifeCtx) },
		v.clearPendingDelete,
	)
	return v
}

// Dialog exposes the delete confirmation dialog.
func (v *ManagementView) Dialog() *ConfirmDialog {
	return v.dialog
}

// Refresh replaces the entire row set with a fresh fetch ordered by creation
// time descending. A fetch failure blocks the whole view: the error message
// stands in place of the table until the next refresh.
func (v *ManagementView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	products, err := v.gw.ListProducts(ctx, gateway.OrderByCreatedDesc)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}

	if err != nil {
		v.logger.Error("Failed to load products", zap.Error(err))
		v.loadErr = err.Error()
	} else {
		v.rows = products
	}
	v.loading = false
}

// SetField updates one draft field. No validation happens until submit.
func (v *ManagementView) SetField(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch field {
	case FieldName:
		v.draft.Name = value
	case FieldUnitPrice:
		v.draft.UnitPrice = value
	case FieldQuantity:
		v.draft.Quantity = value
	}
}

// SetDraft replaces the whole draft, preserving the create/edit mode carried
// by the draft's ID.
func (v *ManagementView) SetDraft(draft domain.ProductDraft) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = draft
}

// Submit validates the draft and issues an insert (create mode) or an update
// keyed by the draft's id (edit mode). Validation and provider failures set
// an error-kind message and preserve the draft; success sets a success-kind
// message, clears the draft, and refreshes the row set.
func (v *ManagementView) Submit(ctx context.Context) {
	v.mu.Lock()
	v.message = FormMessage{}

	draft := v.draft
	if err := draft.Validate(); err != nil {
		v.message = FormMessage{Kind: MessageError, Text: MsgAllFieldsRequired}
		v.mu.Unlock()
		return
	}

	unitPrice, priceErr := strconv.ParseInt(draft.UnitPrice, 10, 64)
	quantity, qtyErr := strconv.ParseInt(draft.Quantity, 10, 64)
	if priceErr != nil || qtyErr != nil {
		// The numeric widgets normally prevent this; surface it like any
		// other submit failure.
		v.message = FormMessage{Kind: MessageError, Text: "Price and quantity must be numeric."}
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	rec := gateway.ProductRecord{
		Name:      draft.Name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}

	var err error
	if draft.Editing() {
		err = v.gw.UpdateProduct(ctx, *draft.ID, rec)
	} else {
		err = v.gw.InsertProduct(ctx, rec)
	}

	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return
	}

	if err != nil {
		v.logger.Warn("Product submit failed", zap.Error(err))
		v.message = FormMessage{Kind: MessageError, Text: err.Error()}
		v.mu.Unlock()
		return
	}

	text := MsgProductAdded
	if draft.Editing() {
		text = MsgProductUpdated
	}
	v.message = FormMessage{Kind: MessageSuccess, Text: text}
	v.draft = domain.ProductDraft{}
	v.mu.Unlock()

	v.Refresh(ctx)
}

// BeginEdit copies the target row into the draft, switches the form to edit
// mode, clears any status message, and raises the scroll-to-top signal so
// the form becomes visible.
func (v *ManagementView) BeginEdit(p domain.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scrollToTop = true
	v.draft = domain.DraftFromProduct(p)
	v.message = FormMessage{}
}

// CancelEdit clears the draft and edit mode without any data-access call.
func (v *ManagementView) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.draft = domain.ProductDraft{}
	v.message = FormMessage{}
}

// RequestDelete records the row as pending deletion and opens the
// confirmation dialog. No data-access call happens until the dialog is
// confirmed. Rows without a persisted id are refused.
func (v *ManagementView) RequestDelete(p domain.Product) {
	if p.ID == 0 {
		return
	}

	v.mu.Lock()
	target := p
	v.pendingDelete = &target
	v.mu.Unlock()

	v.dialog.Open(p.Name)
}

// ConfirmDelete deletes the pending row if it has a valid id. On any outcome
// the dialog closes and the pending target clears; on success the row set is
// refreshed. A delete failure surfaces as the view-blocking fetch error, not
// as a form message.
func (v *ManagementView) ConfirmDelete(ctx context.Context) {
	v.mu.Lock()
	target := v.pendingDelete
	v.mu.Unlock()

	var deleted bool
	if target != nil && target.ID != 0 {
		if err := v.gw.DeleteProduct(ctx, target.ID); err != nil {
			v.mu.Lock()
			if !v.disposed {
				v.logger.Error("Failed to delete product",
					zap.Int64("product_id", target.ID),
					zap.Error(err),
				)
				v.loadErr = err.Error()
			}
			v.mu.Unlock()
		} else {
			deleted = true
		}
	}

	v.dialog.Close()

	v.mu.Lock()
	v.pendingDelete = nil
	disposed := v.disposed
	v.mu.Unlock()

	if deleted && !disposed {
		v.Refresh(ctx)
	}
}

// CancelDelete closes the dialog without a delete call.
func (v *ManagementView) CancelDelete() {
	v.dialog.Close()
}

func (v *ManagementView) clearPendingDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = nil
}

// ConsumeScrollSignal reports and clears the scroll-to-top signal raised by
// BeginEdit.
func (v *ManagementView) ConsumeScrollSignal() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	raised := v.scrollToTop
	v.scrollToTop = false
	return raised
}

// Dispose tears the view down: in-flight results are discarded silently, the
// dialog's timers are cancelled, and the dialog's confirm callback can no
// longer reach the store.
func (v *ManagementView) Dispose() {
	v.mu.Lock()
	v.disposed = true
	v.mu.Unlock()

	v.lifeStop()
	v.dialog.Dismiss()
}

// Snapshot returns the current render state.
func (v *ManagementView) Snapshot() ManagementState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := ManagementState{
		Loading:    v.loading,
		Err:        v.loadErr,
		Editing:    v.draft.Editing(),
		Draft:      v.draft,
		Message:    v.message,
		Dialog:     v.dialog.State(),
		DialogName: v.dialog.SubjectName(),
	}
	if state.Loading || state.Err != "" {
		return state
	}

	state.Rows = renderRows(v.rows)
	if len(state.Rows) == 0 {
		state.Placeholder = EmptyManagementPlaceholder
	}
	return state
}
