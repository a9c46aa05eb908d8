package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product: tea packets and fertilizers sold to suppliers.
// StockBag is the only shared mutable state touched by order processing;
// it must never go below zero (see inventory.AdjustStock).
type Product struct {
	ID         string          `gorm:"primaryKey;size:20" json:"ProductID"`
	Name       string          `gorm:"size:100;not null" json:"ProductName"`
	RatePerBag decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"Rate_per_Bag"`
	StockBag   int             `gorm:"not null;default:0" json:"Stock_bag"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
