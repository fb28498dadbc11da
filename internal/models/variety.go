package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Variety is a sub-classification of an item (a style or design line) with
// its own master size list. Size labels are free-form and per-variety; there
// is no global size vocabulary.
type Variety struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	ShortForm string         `json:"shortForm" gorm:"type:varchar(64)"`
	ImageURL  string         `json:"imageURL" gorm:"type:text"`
	Sizes     pq.StringArray `json:"sizes" gorm:"type:text[]"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SaveVarietyRequest is the payload for creating or updating a variety. A
// nil ID means create.
type SaveVarietyRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name" binding:"required"`
	ShortForm string     `json:"shortForm"`
	ImageURL  string     `json:"imageURL"`
	Sizes     []string   `json:"sizes"`
}
