package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch is a dated quantity ("lote") of a product. Quantity is
// strictly positive while the batch exists; a batch fully consumed is
// deleted, never stored at zero. Unit is a denormalized copy of the owning
// product's unit, kept in sync by the product update cascade.
type InventoryBatch struct {
	ID         string          `gorm:"primaryKey;size:36"`
	ProductID  string          `gorm:"size:36;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Unit       Unit            `gorm:"size:16;not null"`
	ExpiryDate time.Time       `gorm:"not null;index"`
}
