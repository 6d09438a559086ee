// internal/models/order.go
package models

import "github.com/google/uuid"

// Order is written by the checkout service; this backend only reads it for
// seller statistics.
type Order struct {
	BaseModel
	SellerID    uuid.UUID   `json:"seller_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalPrice  float64     `json:"total_price" gorm:"type:decimal(12,2);not null"`
	OrderStatus OrderStatus `json:"order_status" gorm:"type:varchar(20);not null;index"`
}
