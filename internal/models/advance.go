package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	AdvanceStatusPending    AdvanceStatus = "Pending"
	AdvanceStatusTransfered AdvanceStatus = "Transfered" // settled; excluded from settlement deductions
)

type Advance struct {
	ID         uint            `gorm:"primaryKey" json:"AdvanceID"`
	SupplierID string          `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Supplier   Supplier        `json:"-"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Advance_Amount"`
	Date       time.Time       `json:"Date"`
	Status     AdvanceStatus   `gorm:"size:20;not null;default:'Pending'" json:"Status"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
