package settlement

import (
	"testing"
	"time"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Supplier{},
		&models.Product{},
		&models.Collection{},
		&models.Loan{},
		&models.Advance{},
		&models.Order{},
		&models.Payment{},
	))
	return db
}

func newTestCalculator(t *testing.T) (*Calculator, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Supplier{
		ID: "S001", FullName: "K. Perera", Username: "kperera",
	}).Error)
	return NewCalculator(db, nil), db
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got),
		"want %d, got %s", want, got)
}

func TestComputeNoActivity(t *testing.T) {
	calc, _ := newTestCalculator(t)

	stmt, err := calc.Compute("S001")
	require.NoError(t, err)

	assertDecimal(t, 0, stmt.GrossIncome)
	assertDecimal(t, 0, stmt.LoanAmount)
	assertDecimal(t, 0, stmt.AdvanceAmount)
	assertDecimal(t, 0, stmt.ProductsAmount)
	assertDecimal(t, 100, stmt.TransportCharge)
	assertDecimal(t, -100, stmt.FinalTotal)
}

func TestComputeUnknownSupplier(t *testing.T) {
	calc, _ := newTestCalculator(t)

	_, err := calc.Compute("NOPE")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Supplier", nf.Entity)
}

func TestComputeWorkedExample(t *testing.T) {
	calc, db := newTestCalculator(t)

	// 25 kg at rate 200 -> gross 5000
	require.NoError(t, db.Create(&models.Collection{
		SupplierID:      "S001",
		CurrentRate:     decimal.NewFromInt(200),
		TeaBagWeightKg:  27,
		WaterKg:         1,
		BagKg:           1,
		BalanceWeightKg: 25,
		CollectedAt:     time.Now(),
	}).Error)

	// outstanding loan of 1000
	require.NoError(t, db.Create(&models.Loan{
		SupplierID:    "S001",
		Amount:        decimal.NewFromInt(1000),
		Duration:      10,
		MonthlyAmount: decimal.NewFromInt(100),
		DueDate:       time.Now().AddDate(0, 10, 0),
		Status:        models.LoanStatusPending,
	}).Error)

	// completed order: 2 bags at 100 -> 200
	require.NoError(t, db.Create(&models.Product{
		ID: "P001", Name: "Tea Packet 1kg",
		RatePerBag: decimal.NewFromInt(100), StockBag: 10,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		SupplierID:  "S001",
		ProductID:   "P001",
		Qty:         2,
		Status:      models.OrderStatusCompleted,
		RequestDate: time.Now(),
	}).Error)

	stmt, err := calc.Compute("S001")
	require.NoError(t, err)

	assertDecimal(t, 5000, stmt.GrossIncome)
	assertDecimal(t, 1000, stmt.LoanAmount)
	assertDecimal(t, 0, stmt.AdvanceAmount)
	assertDecimal(t, 200, stmt.ProductsAmount)
	assertDecimal(t, 3700, stmt.FinalTotal)
}

func TestComputeExcludesSettledAndForeign(t *testing.T) {
	calc, db := newTestCalculator(t)
	require.NoError(t, db.Create(&models.Supplier{
		ID: "S002", FullName: "A. Silva", Username: "asilva",
	}).Error)

	// settled liabilities do not count
	require.NoError(t, db.Create(&models.Loan{
		SupplierID: "S001", Amount: decimal.NewFromInt(500),
		Duration: 5, Status: models.LoanStatusPaid,
	}).Error)
	require.NoError(t, db.Create(&models.Advance{
		SupplierID: "S001", Amount: decimal.NewFromInt(300),
		Date: time.Now(), Status: models.AdvanceStatusTransfered,
	}).Error)

	// non-completed orders do not count
	require.NoError(t, db.Create(&models.Product{
		ID: "P001", Name: "Tea Packet 1kg",
		RatePerBag: decimal.NewFromInt(100), StockBag: 10,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		SupplierID: "S001", ProductID: "P001", Qty: 3,
		Status: models.OrderStatusPending, RequestDate: time.Now(),
	}).Error)

	// another supplier's activity must not leak in
	require.NoError(t, db.Create(&models.Collection{
		SupplierID: "S002", CurrentRate: decimal.NewFromInt(200),
		TeaBagWeightKg: 10, BalanceWeightKg: 10, CollectedAt: time.Now(),
	}).Error)

	stmt, err := calc.Compute("S001")
	require.NoError(t, err)

	assertDecimal(t, 0, stmt.GrossIncome)
	assertDecimal(t, 0, stmt.LoanAmount)
	assertDecimal(t, 0, stmt.AdvanceAmount)
	assertDecimal(t, 0, stmt.ProductsAmount)
	assertDecimal(t, -100, stmt.FinalTotal)
}

func TestCreatePaymentSnapshotsAmounts(t *testing.T) {
	calc, db := newTestCalculator(t)

	require.NoError(t, db.Create(&models.Collection{
		SupplierID: "S001", CurrentRate: decimal.NewFromInt(200),
		TeaBagWeightKg: 25, BalanceWeightKg: 25, CollectedAt: time.Now(),
	}).Error)

	payment, err := calc.CreatePayment("S001")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assertDecimal(t, 5000, payment.GrossIncome)
	assertDecimal(t, 4900, payment.FinalTotal)

	// later activity must not change the stored row
	require.NoError(t, db.Create(&models.Loan{
		SupplierID: "S001", Amount: decimal.NewFromInt(1000),
		Duration: 10, Status: models.LoanStatusPending,
	}).Error)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, "id = ?", payment.ID).Error)
	assertDecimal(t, 4900, reloaded.FinalTotal)
}

func TestUpdatePaymentStatus(t *testing.T) {
	calc, db := newTestCalculator(t)

	payment, err := calc.CreatePayment("S001")
	require.NoError(t, err)

	updated, err := calc.UpdatePaymentStatus(payment.ID, models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, reloaded.Status)
}

func TestUpdatePaymentStatusMissing(t *testing.T) {
	calc, _ := newTestCalculator(t)

	_, err := calc.UpdatePaymentStatus(999, models.PaymentStatusCompleted)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Payment", nf.Entity)
}

func TestPaymentStatistics(t *testing.T) {
	calc, _ := newTestCalculator(t)

	p1, err := calc.CreatePayment("S001")
	require.NoError(t, err)
	_, err = calc.CreatePayment("S001")
	require.NoError(t, err)
	_, err = calc.UpdatePaymentStatus(p1.ID, models.PaymentStatusCompleted)
	require.NoError(t, err)

	stats, err := calc.PaymentStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPayments)
	assert.Equal(t, int64(1), stats.PendingPayments)
	assert.Equal(t, int64(1), stats.CompletedPayments)
	assertDecimal(t, -100, stats.TotalPaid)
}
