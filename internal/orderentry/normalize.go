package orderentry

import (
	"errors"
	"strings"
)

// Header carries the order-level fields entered above the grid.
type Header struct {
	Customer string `json:"customer"`
	Date     string `json:"date"` // YYYY-MM-DD
	Market   string `json:"market"`
}

// OrderRow is one flattened submission record: a nonzero quantity cell
// denormalized with its header and row note. This is the unit the remote
// store persists.
type OrderRow struct {
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Market   string `json:"market"`
	Item     string `json:"item"`
	Variety  string `json:"variety"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Comment  string `json:"comment"`
}

// Validation failures reported before submission. The strings are shown to
// the user verbatim and detected before any write is attempted.
var (
	ErrCustomerRequired = errors.New("Customer name is required.")
	ErrNoQuantities     = errors.New("Please enter at least one quantity.")
)

// Normalize flattens the grid into submission rows: every size with a
// quantity > 0 becomes one row carrying the shared color/comment of its
// (item, variety) note. Ordering is deterministic: catalog item order, then
// the item's size-map order, then size-list order. Variety ids that do not
// resolve are skipped.
func (g *Grid) Normalize(h Header) []OrderRow {
	rows := []OrderRow{}
	customer := strings.TrimSpace(h.Customer)
	market := strings.TrimSpace(h.Market)

	for i := 0; i < g.Catalog.Len(); i++ {
		item := g.Catalog.Item(i)
		for _, vs := range item.Sizes {
			variety, ok := g.Catalog.Variety(vs.VarietyID)
			if !ok {
				continue
			}
			note := g.Notes.Get(i, vs.VarietyID)
			for _, size := range vs.Sizes {
				qty := g.Quantities.Get(i, vs.VarietyID, size)
				if qty <= 0 {
					continue
				}
				rows = append(rows, OrderRow{
					Customer: customer,
					Date:     h.Date,
					Market:   market,
					Item:     item.Name,
					Variety:  variety.Name,
					Color:    strings.TrimSpace(note.Color),
					Size:     size,
					Quantity: qty,
					Comment:  strings.TrimSpace(note.Comment),
				})
			}
		}
	}
	return rows
}

// ValidateSubmission checks the preconditions for submitting rows built from
// a header. It never mutates the stores.
func ValidateSubmission(h Header, rows []OrderRow) error {
	if strings.TrimSpace(h.Customer) == "" {
		return ErrCustomerRequired
	}
	if len(rows) == 0 {
		return ErrNoQuantities
	}
	return nil
}
