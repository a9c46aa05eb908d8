package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection: one tea delivery event from a supplier.
// BalanceWeightKg = TeaBagWeightKg - WaterKg - BagKg (the sellable weight).
type Collection struct {
	ID              uint            `gorm:"primaryKey" json:"Collection_ID"`
	SupplierID      string          `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Supplier        Supplier        `json:"-"`
	CurrentRate     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"Current_Rate"`
	TeaBagWeightKg  float64         `gorm:"not null" json:"TeaBagWeight_kg"`
	WaterKg         float64         `gorm:"not null" json:"Water_kg"`
	BagKg           float64         `gorm:"not null" json:"Bag_kg"`
	BalanceWeightKg float64         `gorm:"not null" json:"BalanceWeight_kg"`
	CollectedAt     time.Time       `gorm:"index" json:"DateTime"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
