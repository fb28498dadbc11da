package orderentry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Draft is the persisted snapshot of in-progress order entry. Fields is a
// flat map keyed by synthetic cell ids (qty_<item>_<variety>_<size>,
// color_<item>_<variety>, comment_<item>_<variety>), the same shape the
// browser client kept in local storage.
type Draft struct {
	Customer string            `json:"customer"`
	Date     string            `json:"date"`
	Market   string            `json:"market"`
	Fields   map[string]string `json:"fields"`
	SavedAt  time.Time         `json:"savedAt,omitempty"`
}

func qtyFieldID(itemIndex int, varietyID, size string) string {
	return fmt.Sprintf("qty_%d_%s_%s", itemIndex, varietyID, size)
}

func colorFieldID(itemIndex int, varietyID string) string {
	return fmt.Sprintf("color_%d_%s", itemIndex, varietyID)
}

func commentFieldID(itemIndex int, varietyID string) string {
	return fmt.Sprintf("comment_%d_%s", itemIndex, varietyID)
}

// SnapshotDraft captures the header and every stored quantity and note into
// a draft document. Zero quantities are absent from the store and therefore
// absent from the draft.
func (g *Grid) SnapshotDraft(h Header) *Draft {
	d := &Draft{
		Customer: h.Customer,
		Date:     h.Date,
		Market:   h.Market,
		Fields:   make(map[string]string),
		SavedAt:  time.Now().UTC(),
	}
	g.Quantities.Each(func(key CellKey, qty int) {
		d.Fields[qtyFieldID(key.ItemIndex, key.VarietyID, key.Size)] = strconv.Itoa(qty)
	})
	for i := 0; i < g.Catalog.Len(); i++ {
		for _, vs := range g.Catalog.Item(i).Sizes {
			note := g.Notes.Get(i, vs.VarietyID)
			if note.Color != "" {
				d.Fields[colorFieldID(i, vs.VarietyID)] = note.Color
			}
			if note.Comment != "" {
				d.Fields[commentFieldID(i, vs.VarietyID)] = note.Comment
			}
		}
	}
	return d
}

// ApplyDraft repopulates the stores from a draft and returns the restored
// header. The catalog governs which fields are looked up, so fields for
// cells that no longer exist are ignored; derived totals follow from the
// stores automatically.
func (g *Grid) ApplyDraft(d *Draft) Header {
	g.Reset()
	if d == nil {
		return Header{}
	}
	for i := 0; i < g.Catalog.Len(); i++ {
		for _, vs := range g.Catalog.Item(i).Sizes {
			if color, ok := d.Fields[colorFieldID(i, vs.VarietyID)]; ok {
				g.Notes.SetColor(i, vs.VarietyID, color)
			}
			if comment, ok := d.Fields[commentFieldID(i, vs.VarietyID)]; ok {
				g.Notes.SetComment(i, vs.VarietyID, comment)
			}
			for _, size := range vs.Sizes {
				if raw, ok := d.Fields[qtyFieldID(i, vs.VarietyID, size)]; ok {
					g.Quantities.Set(i, vs.VarietyID, size, raw)
				}
			}
		}
	}
	return Header{Customer: d.Customer, Date: d.Date, Market: d.Market}
}

// EncodeDraft serializes a draft for storage.
func EncodeDraft(d *Draft) ([]byte, error) {
	return json.Marshal(d)
}

// DecodeDraft parses a stored draft document. A malformed document returns
// an error; callers discard the stored copy rather than surfacing it.
func DecodeDraft(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("malformed draft document: %w", err)
	}
	if d.Fields == nil {
		d.Fields = make(map[string]string)
	}
	return &d, nil
}
