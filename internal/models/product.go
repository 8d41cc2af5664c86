// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Category      string          `json:"category" gorm:"size:100;index"`
	Subcategory   string          `json:"subcategory,omitempty" gorm:"size:100"`
	InitialStock  int             `json:"initial_stock" gorm:"not null"`
	CurrentStock  int             `json:"current_stock" gorm:"not null"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"type:decimal(12,2);not null"`
	SalePrice     decimal.Decimal `json:"sale_price" gorm:"type:decimal(12,2);not null"`

	// Relationships
	Owner User `json:"-" gorm:"foreignKey:UserID"`
}
