package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateConfig: the factory-wide tea leaf rate applied to new collections.
type RateConfig struct {
	ID            uint            `gorm:"primaryKey" json:"RateID"`
	RatePerKg     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"Rate_Per_Kg"`
	EffectiveDate time.Time       `json:"Effective_Date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
