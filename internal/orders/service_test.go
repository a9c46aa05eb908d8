package orders

import (
	"testing"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
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
		&models.Order{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Supplier{
		ID: "S001", FullName: "K. Perera", Username: "kperera",
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "P001", Name: "Tea Packet 1kg",
		RatePerBag: decimal.NewFromInt(100), StockBag: 10,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "P002", Name: "Fertilizer 50kg",
		RatePerBag: decimal.NewFromInt(250), StockBag: 5,
	}).Error)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(db, nil, log), db
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.StockBag
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func TestCreateDeductsStock(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	assert.Equal(t, 6, stockOf(t, db, "P001"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 4, order.TotalItems)
	assert.Equal(t, 0, order.TotalTeaPackets)
	assert.Equal(t, 4, order.TotalOtherItems)
}

func TestCreateInsufficientStockLeavesNothingBehind(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 11})
	var is *apperr.InsufficientStockError
	require.ErrorAs(t, err, &is)

	assert.Equal(t, 10, stockOf(t, db, "P001"))
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(OrderInput{ProductID: "P001", Qty: 1})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "S_RegisterID", ve.Field)

	_, err = svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Qty", ve.Field)
}

func TestUpdateAdjustsByDelta(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	_, err = svc.Update(order.ID, OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 7})
	require.NoError(t, err)
	assert.Equal(t, 3, stockOf(t, db, "P001"))

	_, err = svc.Update(order.ID, OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, stockOf(t, db, "P001"))
}

func TestUpdateSwapsProduct(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	_, err = svc.Update(order.ID, OrderInput{SupplierID: "S001", ProductID: "P002", Qty: 3})
	require.NoError(t, err)

	assert.Equal(t, 10, stockOf(t, db, "P001"))
	assert.Equal(t, 2, stockOf(t, db, "P002"))
}

func TestUpdateInsufficientStockRollsBack(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	_, err = svc.Update(order.ID, OrderInput{SupplierID: "S001", ProductID: "P002", Qty: 6})
	var is *apperr.InsufficientStockError
	require.ErrorAs(t, err, &is)

	// both products and the order row keep their pre-update state
	assert.Equal(t, 6, stockOf(t, db, "P001"))
	assert.Equal(t, 5, stockOf(t, db, "P002"))
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, "P001", reloaded.ProductID)
	assert.Equal(t, 4, reloaded.Qty)
}

func TestDeleteRestoresStockOnce(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))
	assert.Equal(t, 10, stockOf(t, db, "P001"))

	err = svc.Delete(order.ID)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 10, stockOf(t, db, "P001"))
}

func TestDeleteMissingOrder(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(999)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Order", nf.Entity)
}

func TestCreateBulkAllOrNothing(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.CreateBulk([]OrderInput{
		{SupplierID: "S001", ProductID: "P001", Qty: 4},
		{SupplierID: "S001", ProductID: "P002", Qty: 6}, // exceeds P002 stock
	})
	var is *apperr.InsufficientStockError
	require.ErrorAs(t, err, &is)

	assert.Equal(t, 10, stockOf(t, db, "P001"))
	assert.Equal(t, 5, stockOf(t, db, "P002"))
	assert.Equal(t, int64(0), orderCount(t, db))
}

func TestCreateBulkSucceeds(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateBulk([]OrderInput{
		{SupplierID: "S001", ProductID: "P001", Qty: 4},
		{SupplierID: "S001", ProductID: "P002", Qty: 3},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, 6, stockOf(t, db, "P001"))
	assert.Equal(t, 2, stockOf(t, db, "P002"))
	assert.Equal(t, int64(2), orderCount(t, db))
}

func TestCreateBulkNamesOffendingElement(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateBulk([]OrderInput{
		{SupplierID: "S001", ProductID: "P001", Qty: 4},
		{SupplierID: "S001", ProductID: "P001"},
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "orders[1].Qty", ve.Field)
}

func TestUpdateStatusHasNoStockEffect(t *testing.T) {
	svc, db := newTestService(t)

	order, err := svc.Create(OrderInput{SupplierID: "S001", ProductID: "P001", Qty: 4})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.Equal(t, 6, stockOf(t, db, "P001"))
}
