package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderpad-service/internal/orderentry"
)

// Order is one submitted batch: the header fields shared by its rows plus
// rollup totals. Rows are the persisted unit; the batch groups them for
// listing and for the printable order sheet.
type Order struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Customer   string         `json:"customer" gorm:"type:varchar(255);not null;index"`
	Date       string         `json:"date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Market     string         `json:"market" gorm:"type:varchar(255)"`
	RowCount   int            `json:"rowCount" gorm:"not null"`
	TotalUnits int            `json:"totalUnits" gorm:"not null"`
	Rows       []OrderRow     `json:"rows" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// OrderRow is one persisted submission row: a nonzero (item, variety, size)
// quantity denormalized with its header and row note. Position preserves
// normalization order within the batch.
type OrderRow struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID  uuid.UUID `json:"orderId" gorm:"type:uuid;not null;index"`
	Position int       `json:"position" gorm:"not null"`
	Item     string    `json:"item" gorm:"type:varchar(255);not null"`
	Variety  string    `json:"variety" gorm:"type:varchar(255);not null"`
	Color    string    `json:"color" gorm:"type:varchar(64)"`
	Size     string    `json:"size" gorm:"type:varchar(32);not null"`
	Quantity int       `json:"quantity" gorm:"not null"`
	Comment  string    `json:"comment" gorm:"type:text"`
}

// NewOrder builds a batch from normalized rows. The batch id is the
// client-generated submission id, which makes resubmitting after a network
// failure idempotent.
func NewOrder(batchID uuid.UUID, header orderentry.Header, rows []orderentry.OrderRow) *Order {
	order := &Order{
		ID:       batchID,
		Customer: strings.TrimSpace(header.Customer),
		Date:     header.Date,
		Market:   strings.TrimSpace(header.Market),
		RowCount: len(rows),
	}
	for i, r := range rows {
		order.TotalUnits += r.Quantity
		order.Rows = append(order.Rows, OrderRow{
			OrderID:  batchID,
			Position: i,
			Item:     r.Item,
			Variety:  r.Variety,
			Color:    r.Color,
			Size:     r.Size,
			Quantity: r.Quantity,
			Comment:  r.Comment,
		})
	}
	return order
}
