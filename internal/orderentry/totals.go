package orderentry

import (
	"fmt"
	"strings"
)

// Grid ties a catalog snapshot to the stores holding its edits. Totals are
// always computed from the quantity store, never cached, so a badge can
// never disagree with the cells it summarizes.
type Grid struct {
	Catalog    *Catalog
	Quantities *QuantityStore
	Notes      *NotesStore
}

// NewGrid creates an empty grid over a catalog snapshot.
func NewGrid(catalog *Catalog) *Grid {
	return &Grid{
		Catalog:    catalog,
		Quantities: NewQuantityStore(),
		Notes:      NewNotesStore(),
	}
}

// ItemSummary is one entry of the global summary bar.
type ItemSummary struct {
	Item  string `json:"item"`
	Total int    `json:"total"`
}

// RowTotal sums the quantities of one (item, variety) row over the sizes the
// item exposes for that variety. The item's own size list governs, not the
// variety's master list.
func (g *Grid) RowTotal(itemIndex int, varietyID string) int {
	if itemIndex < 0 || itemIndex >= g.Catalog.Len() {
		return 0
	}
	total := 0
	for _, size := range g.Catalog.Item(itemIndex).Sizes.Sizes(varietyID) {
		total += g.Quantities.Get(itemIndex, varietyID, size)
	}
	return total
}

// ItemTotal sums RowTotal over every variety in the item's size map.
func (g *Grid) ItemTotal(itemIndex int) int {
	if itemIndex < 0 || itemIndex >= g.Catalog.Len() {
		return 0
	}
	total := 0
	for _, vs := range g.Catalog.Item(itemIndex).Sizes {
		total += g.RowTotal(itemIndex, vs.VarietyID)
	}
	return total
}

// Summary lists the items with a nonzero total, in catalog order. Empty when
// nothing is set.
func (g *Grid) Summary() []ItemSummary {
	summary := []ItemSummary{}
	for i := 0; i < g.Catalog.Len(); i++ {
		if total := g.ItemTotal(i); total > 0 {
			summary = append(summary, ItemSummary{Item: g.Catalog.Item(i).Name, Total: total})
		}
	}
	return summary
}

// SummaryLine renders the summary bar text, e.g. "Total ─ Kurti: 3  |
// Shirt: 5", or "" when no quantities are set.
func (g *Grid) SummaryLine() string {
	summary := g.Summary()
	if len(summary) == 0 {
		return ""
	}
	parts := make([]string, len(summary))
	for i, s := range summary {
		parts[i] = fmt.Sprintf("%s: %d", s.Item, s.Total)
	}
	return "Total ─ " + strings.Join(parts, "  |  ")
}

// TotalUnits sums every stored quantity.
func (g *Grid) TotalUnits() int {
	total := 0
	g.Quantities.Each(func(_ CellKey, qty int) {
		total += qty
	})
	return total
}

// Reset clears both stores, preserving the catalog snapshot.
func (g *Grid) Reset() {
	g.Quantities.Reset()
	g.Notes.Reset()
}
