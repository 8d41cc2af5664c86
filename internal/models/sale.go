// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale rows are immutable once committed. ProductID is a weak reference:
// deleting a product leaves its sales in place, which is why the product
// name and unit price are denormalized onto the sale at commit time.
type Sale struct {
	BaseModel
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string          `json:"product_name" gorm:"size:255;not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Profit      decimal.Decimal `json:"profit" gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
}
