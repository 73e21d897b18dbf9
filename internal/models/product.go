package models

import "time"

// Unit is the unit of measure a product is tracked in. The values are the
// ones offered by the dashboards (Spanish labels).
type Unit string

const (
	UnitUnidades  Unit = "unidades"
	UnitKilogramo Unit = "kg"
	UnitGramo     Unit = "g"
	UnitLibra     Unit = "lb"
	UnitLitro     Unit = "litros"
	UnitMililitro Unit = "ml"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitUnidades, UnitKilogramo, UnitGramo, UnitLibra, UnitLitro, UnitMililitro:
		return true
	}
	return false
}

// Product is the master record for a tracked product. The name is unique
// case-insensitively across products; enforced in the service layer, not
// by a DB constraint.
type Product struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null;index"`
	Unit      Unit   `gorm:"size:16;not null"`
	CreatedAt time.Time
}
