package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRecord is one line of usage history. ProductName and Unit are
// denormalized so the history survives product deletion; they are rewritten
// by the product update cascade so the label always matches the product's
// current identity. Quantity and ConsumedAt are immutable.
type ConsumptionRecord struct {
	ID          string          `gorm:"primaryKey;size:36"`
	ProductID   string          `gorm:"size:36;not null;index"`
	ProductName string          `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Unit        Unit            `gorm:"size:16;not null"`
	ConsumedAt  time.Time       `gorm:"not null;index"`
}
