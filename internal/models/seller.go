// internal/models/seller.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street  string `json:"street,omitempty" gorm:"size:255"`
	City    string `json:"city,omitempty" gorm:"size:100"`
	State   string `json:"state,omitempty" gorm:"size:100"`
	ZipCode string `json:"zip_code,omitempty" gorm:"size:20"`
	Country string `json:"country,omitempty" gorm:"size:100"`
}

type BusinessInfo struct {
	BusinessType    string `json:"business_type,omitempty" gorm:"size:50"`
	TaxID           string `json:"tax_id,omitempty" gorm:"size:50"`
	BusinessLicense string `json:"business_license,omitempty" gorm:"size:100"`
}

// Seller is the vendor profile of a User. Unapproved sellers cannot log in
// or manage products.
type Seller struct {
	BaseModel
	UserID       uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	ShopName     string       `json:"shop_name" gorm:"size:100;not null"`
	Email        string       `json:"email" gorm:"size:255;not null"`
	Phone        string       `json:"phone,omitempty" gorm:"size:30"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Address      Address      `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	BusinessInfo BusinessInfo `json:"business_info" gorm:"embedded;embeddedPrefix:business_"`
	IsApproved   bool         `json:"is_approved" gorm:"not null;index"`
	ApprovedAt   *time.Time   `json:"approved_at,omitempty"`
}

// Approve marks the seller approved, keeping the first approval time.
func (s *Seller) Approve(now time.Time) {
	s.IsApproved = true
	if s.ApprovedAt == nil {
		s.ApprovedAt = &now
	}
}
