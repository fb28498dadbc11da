package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Customer is a buyer the order header autocompletes against. Name and
// phone are mandatory; address and images are not.
type Customer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string         `json:"phone" gorm:"type:varchar(32);not null"`
	Address   string         `json:"address" gorm:"type:text"`
	Images    pq.StringArray `json:"images" gorm:"type:text[]"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// MaxCustomerImages caps the image slots per customer.
const MaxCustomerImages = 2

// SaveCustomerRequest is the payload for creating or updating a customer.
type SaveCustomerRequest struct {
	ID      *uuid.UUID `json:"id"`
	Name    string     `json:"name" binding:"required"`
	Phone   string     `json:"phone" binding:"required"`
	Address string     `json:"address"`
	Images  []string   `json:"images"`
}

// Color is one entry of the color registry. Names are kept unique
// case-insensitively; items store their own chosen subset plus any ad-hoc
// colors not present here. Palette rows are hard-deleted: nothing references
// them by id, and the unique index must not block re-adding a deleted name.
type Color struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
}
