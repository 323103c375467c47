package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a product listed in the store. Price is in cents.
type Item struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image" gorm:"size:512"`
	LargeImage  string    `json:"large_image" gorm:"size:512"`
	Price       int64     `json:"price" gorm:"not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
