package domain

import (
	"strconv"
	"strings"
	"time"
)

// Product represents one row of the inventory table. The ID is assigned by
// the store on insert and is immutable afterwards.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UnitPrice int64     `json:"unit_price" db:"unit_price"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductDraft holds the in-progress form values for creating or editing a
// product. All editable fields are kept as text, mirroring form input; a nil
// ID means the draft will create a new row, a non-nil ID means it edits the
// row with that id.
type ProductDraft struct {
	ID        *int64
	Name      string
	UnitPrice string
	Quantity  string
}

// Editing reports whether the draft targets an existing row.
func (d ProductDraft) Editing() bool {
	return d.ID != nil
}

// Validate performs the presence-only check applied on submit: all three
// fields must be non-empty. Type and range checks are deliberately not done
// here.
func (d ProductDraft) Validate() error {
	if d.Name == "" || d.UnitPrice == "" || d.Quantity == "" {
		return ErrDraftIncomplete
	}
	return nil
}

// DraftFromProduct copies an existing row into a draft for editing.
func DraftFromProduct(p Product) ProductDraft {
	id := p.ID
	return ProductDraft{
		ID:        &id,
		Name:      p.Name,
		UnitPrice: strconv.FormatInt(p.UnitPrice, 10),
		Quantity:  strconv.FormatInt(p.Quantity, 10),
	}
}

// FormatRupiah renders an integer amount in the "Rp 50.000" style used by the
// product tables, with a dot every three digits.
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if negative {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}
