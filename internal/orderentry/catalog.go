// Package orderentry implements the order-entry engine: the catalog snapshot
// the grid renders from, the quantity and notes stores behind the grid cells,
// derived totals, and the flattening of a filled grid into submission rows.
// Everything here is pure in-memory state; persistence lives in the
// repository and service layers.
package orderentry

// Variety is the resolved display info for a variety id.
type Variety struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VarietySizes is one entry of an item's size map: a variety id and the
// size labels the item offers under that variety. The slice form keeps the
// map ordered, so grid rows and submission rows come out in a stable order.
type VarietySizes struct {
	VarietyID string   `json:"varietyId"`
	Sizes     []string `json:"sizes"`
}

// SizeMap is an ordered mapping from variety id to size labels.
type SizeMap []VarietySizes

// Sizes returns the size list for a variety id, or nil if the item does not
// carry that variety.
func (m SizeMap) Sizes(varietyID string) []string {
	for _, vs := range m {
		if vs.VarietyID == varietyID {
			return vs.Sizes
		}
	}
	return nil
}

// Item is one purchasable item as the grid sees it.
type Item struct {
	Name  string  `json:"name"`
	Sizes SizeMap `json:"sizes"`
}

// Row is one renderable grid row: an (item, variety) pair with the item's
// size list for that variety. Rows exist only for variety ids that resolve
// against the variety registry.
type Row struct {
	ItemIndex int
	Variety   Variety
	Sizes     []string
}

// Catalog is an immutable snapshot of the items and varieties the grid is
// built from. It is replaced wholesale on registry reload; in-flight readers
// keep their old snapshot.
type Catalog struct {
	items     []Item
	varieties map[string]Variety
}

// NewCatalog builds a snapshot from registry order. Items referencing
// variety ids missing from the registry are kept; the dangling ids simply
// produce no rows.
func NewCatalog(items []Item, varieties []Variety) *Catalog {
	byID := make(map[string]Variety, len(varieties))
	for _, v := range varieties {
		byID[v.ID] = v
	}
	return &Catalog{items: items, varieties: byID}
}

// Len returns the number of items in the snapshot.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at index i.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Variety resolves a variety id against the registry snapshot.
func (c *Catalog) Variety(id string) (Variety, bool) {
	v, ok := c.varieties[id]
	return v, ok
}

// Configured reports whether the item at index i has at least one variety
// configured. Items with an empty size map render as a "not configured"
// state rather than an empty grid.
func (c *Catalog) Configured(i int) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	return len(c.items[i].Sizes) > 0
}

// Rows returns the renderable rows for the item at index i, in size-map
// order, skipping variety ids that do not resolve.
func (c *Catalog) Rows(i int) []Row {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	var rows []Row
	for _, vs := range c.items[i].Sizes {
		v, ok := c.varieties[vs.VarietyID]
		if !ok {
			continue
		}
		rows = append(rows, Row{ItemIndex: i, Variety: v, Sizes: vs.Sizes})
	}
	return rows
}
