package settlement

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransportCharge is the fixed per-settlement deduction in currency units.
var TransportCharge = decimal.NewFromInt(100)

// Notifier delivers best-effort payment status messages after the primary
// write has succeeded.
type Notifier interface {
	NotifySupplier(supplierID, message string)
}

// Calculator aggregates a supplier's collections, liabilities and product
// purchases into one settlement figure. Compute is a pure read; payment
// persistence snapshots its output.
type Calculator struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCalculator(db *gorm.DB, notifier Notifier) *Calculator {
	return &Calculator{db: db, notifier: notifier}
}

type Settlement struct {
	SupplierID      string          `json:"S_RegisterID"`
	GrossIncome     decimal.Decimal `json:"GrossIncome"`
	LoanAmount      decimal.Decimal `json:"LoanAmount"`
	AdvanceAmount   decimal.Decimal `json:"AdvanceAmount"`
	ProductsAmount  decimal.Decimal `json:"ProductsAmount"`
	TransportCharge decimal.Decimal `json:"TransportCharge"`
	FinalTotal      decimal.Decimal `json:"FinalTotal"`
}

// Compute runs the four aggregate queries and derives the final total.
// Each sum defaults to zero, so a supplier with no activity settles at
// -TransportCharge.
func (calc *Calculator) Compute(supplierID string) (*Settlement, error) {
	var count int64
	if err := calc.db.Model(&models.Supplier{}).Where("id = ?", supplierID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &apperr.NotFoundError{Entity: "Supplier", ID: supplierID}
	}

	gross, err := calc.sum(calc.db.Model(&models.Collection{}).
		Where("supplier_id = ?", supplierID),
		"COALESCE(SUM(balance_weight_kg * current_rate), 0) AS total")
	if err != nil {
		return nil, err
	}

	loan, err := calc.sum(calc.db.Model(&models.Loan{}).
		Where("supplier_id = ? AND status <> ?", supplierID, models.LoanStatusPaid),
		"COALESCE(SUM(amount), 0) AS total")
	if err != nil {
		return nil, err
	}

	advance, err := calc.sum(calc.db.Model(&models.Advance{}).
		Where("supplier_id = ? AND status <> ?", supplierID, models.AdvanceStatusTransfered),
		"COALESCE(SUM(amount), 0) AS total")
	if err != nil {
		return nil, err
	}

	products, err := calc.sum(calc.db.Model(&models.Order{}).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.supplier_id = ? AND orders.status = ?", supplierID, models.OrderStatusCompleted),
		"COALESCE(SUM(orders.qty * products.rate_per_bag), 0) AS total")
	if err != nil {
		return nil, err
	}

	return &Settlement{
		SupplierID:      supplierID,
		GrossIncome:     gross,
		LoanAmount:      loan,
		AdvanceAmount:   advance,
		ProductsAmount:  products,
		TransportCharge: TransportCharge,
		FinalTotal:      gross.Sub(loan).Sub(advance).Sub(products).Sub(TransportCharge),
	}, nil
}

func (calc *Calculator) sum(q *gorm.DB, expr string) (decimal.Decimal, error) {
	var agg struct {
		Total decimal.Decimal
	}
	if err := q.Select(expr).Scan(&agg).Error; err != nil {
		return decimal.Zero, err
	}
	return agg.Total, nil
}

// CreatePayment freezes the current settlement into a Pending payment row.
func (calc *Calculator) CreatePayment(supplierID string) (*models.Payment, error) {
	if supplierID == "" {
		return nil, &apperr.ValidationError{Field: "S_RegisterID"}
	}

	stmt, err := calc.Compute(supplierID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		SupplierID:      supplierID,
		GrossIncome:     stmt.GrossIncome,
		LoanAmount:      stmt.LoanAmount,
		AdvanceAmount:   stmt.AdvanceAmount,
		ProductsAmount:  stmt.ProductsAmount,
		TransportCharge: stmt.TransportCharge,
		FinalTotal:      stmt.FinalTotal,
		Date:            time.Now(),
		Status:          models.PaymentStatusPending,
	}
	if err := calc.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePaymentStatus transitions the payment and tells the supplier.
func (calc *Calculator) UpdatePaymentStatus(id uint, status models.PaymentStatus) (*models.Payment, error) {
	if status == "" {
		return nil, &apperr.ValidationError{Field: "Status"}
	}

	var payment models.Payment
	if err := calc.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Payment", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}

	if err := calc.db.Model(&payment).Update("status", status).Error; err != nil {
		return nil, err
	}
	payment.Status = status

	if calc.notifier != nil {
		calc.notifier.NotifySupplier(payment.SupplierID,
			fmt.Sprintf("Your payment #%d is now %s", payment.ID, status))
	}
	return &payment, nil
}

type Statistics struct {
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	TotalPayments     int64           `json:"totalPayments"`
	PendingPayments   int64           `json:"pendingPayments"`
	CompletedPayments int64           `json:"completedPayments"`
}

func (calc *Calculator) PaymentStatistics() (*Statistics, error) {
	totalPaid, err := calc.sum(calc.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted),
		"COALESCE(SUM(final_total), 0) AS total")
	if err != nil {
		return nil, err
	}

	stats := Statistics{TotalPaid: totalPaid}
	if err := calc.db.Model(&models.Payment{}).Count(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}
	if err := calc.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPending).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, err
	}
	if err := calc.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Count(&stats.CompletedPayments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
