package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "Pending"
	LoanStatusApproved LoanStatus = "Approved"
	LoanStatusPaid     LoanStatus = "Paid" // settled; excluded from settlement deductions
)

type Loan struct {
	ID            uint            `gorm:"primaryKey" json:"LoanID"`
	SupplierID    string          `gorm:"size:20;index;not null" json:"S_RegisterID"`
	Supplier      Supplier        `json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Loan_Amount"`
	Duration      int             `gorm:"not null" json:"Duration"` // months
	Purpose       string          `gorm:"size:255" json:"PurposeOfLoan"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"Monthly_Amount"`
	DueDate       time.Time       `json:"Due_Date"`
	Status        LoanStatus      `gorm:"size:20;not null;default:'Pending'" json:"Status"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
