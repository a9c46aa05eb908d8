package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusRejected  PaymentStatus = "Rejected"
)

// Payment: a persisted settlement snapshot for a supplier. The amounts are
// frozen at creation time; later collections or loans do not change them.
type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"PaymentsID"`
	SupplierID      string          `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Supplier        Supplier        `json:"-"`
	GrossIncome     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Gross_Income"`
	LoanAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Supplier_Loan_Amount"`
	AdvanceAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Supplier_Advance_Amount"`
	ProductsAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"TeaPackets_Fertilizers_Amount"`
	TransportCharge decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Transport_Charge"`
	FinalTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Final_Total_Salary"`
	Date            time.Time       `json:"Date"`
	Status          PaymentStatus   `gorm:"size:20;not null;default:'Pending'" json:"Status"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
