package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification is a pending expiry warning for one inventory batch. Rows
// are reconciled against the current batches: created when a batch enters
// the expiring-soon window, refreshed while the remaining days change, and
// removed when the batch disappears or leaves the window.
type Notification struct {
	ID               string          `gorm:"primaryKey;size:36"`
	InventoryBatchID string          `gorm:"size:36;not null;index"`
	ProductName      string          `gorm:"not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	ExpiryDate       time.Time       `gorm:"not null;index"`
	DaysUntilExpiry  int
	Read             bool
}
