package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"orderpad-service/internal/orderentry"
)

// SizeMap stores an item's per-variety size lists as a JSONB column. On the
// wire it is a JSON object keyed by variety id, but insertion order is
// preserved (both marshalling and scanning walk the object in document
// order), so grid rows and submission rows are reproducible.
type SizeMap orderentry.SizeMap

// Value implements driver.Valuer for JSONB storage.
func (m SizeMap) Value() (driver.Value, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Scan implements sql.Scanner for JSONB retrieval.
func (m *SizeMap) Scan(value interface{}) error {
	if value == nil {
		*m = SizeMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported SizeMap source type %T", value)
	}
}

// MarshalJSON writes the map as a JSON object in insertion order.
func (m SizeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, vs := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(vs.VarietyID)
		if err != nil {
			return nil, err
		}
		sizes := vs.Sizes
		if sizes == nil {
			sizes = []string{}
		}
		val, err := json.Marshal(sizes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object preserving key order via the token
// stream (a plain map would scramble it).
func (m *SizeMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = SizeMap{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("size map must be a JSON object, got %v", tok)
	}

	out := SizeMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("size map key must be a string, got %v", keyTok)
		}
		var sizes []string
		if err := dec.Decode(&sizes); err != nil {
			return fmt.Errorf("size list for variety %q: %w", key, err)
		}
		out = append(out, orderentry.VarietySizes{VarietyID: key, Sizes: sizes})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// Item is one purchasable item: display info, its color choices, and the
// ordered per-variety size lists that shape its grid card. An item's size
// list for a variety may be a subset of (or differ from) the variety's
// master list; that is deliberate and unvalidated.
type Item struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	ShortForm string         `json:"shortForm" gorm:"type:varchar(64)"`
	Images    pq.StringArray `json:"images" gorm:"type:text[]"`
	Colors    pq.StringArray `json:"colors" gorm:"type:text[]"`
	Price     string         `json:"price" gorm:"type:varchar(64)"`
	Comment   string         `json:"comment" gorm:"type:text"`
	Sizes     SizeMap        `json:"sizes" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// MaxItemImages caps the image slots per item.
const MaxItemImages = 3

// SaveItemRequest is the payload for creating or updating an item.
type SaveItemRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name" binding:"required"`
	ShortForm string     `json:"shortForm"`
	Images    []string   `json:"images"`
	Colors    []string   `json:"colors"`
	Price     string     `json:"price"`
	Comment   string     `json:"comment"`
	Sizes     SizeMap    `json:"sizes"`
}
