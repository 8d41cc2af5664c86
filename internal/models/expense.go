// internal/models/expense.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	BaseModel
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Category    string          `json:"category,omitempty" gorm:"size:100"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
}
