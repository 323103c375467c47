package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionUser is the role every account starts with.
const PermissionUser = "USER"

// Permissions is a set of role tags stored as a JSON column.
type Permissions []string

// Value implements driver.Valuer.
func (p Permissions) Value() (driver.Value, error) {
	if p == nil {
		p = Permissions{}
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *Permissions) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Permissions{}
		return nil
	default:
		return fmt.Errorf("unsupported permissions column type %T", value)
	}
}

// User represents a registered customer account.
//
// Email is stored lowercased; normalization happens in the service layer
// before any lookup or write. ResetToken and ResetTokenExpiry are set and
// cleared together: a non-nil token without an expiry is invalid state.
type User struct {
	ID               uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string      `json:"name" gorm:"size:255;not null"`
	Email            string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string      `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Permissions      Permissions `json:"permissions" gorm:"type:json"`
	ResetToken       *string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time  `json:"-"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
