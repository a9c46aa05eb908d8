package inventory

import (
	"testing"

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
	// a fresh connection would see an empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id string, stock int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID:         id,
		Name:       "Tea Packet 1kg",
		RatePerBag: decimal.NewFromInt(100),
		StockBag:   stock,
	}).Error)
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.StockBag
}

func TestAdjustStockDeducts(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "P001", 10)

	require.NoError(t, AdjustStock(db, "P001", -4))
	assert.Equal(t, 6, stockOf(t, db, "P001"))
}

func TestAdjustStockRestocks(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "P001", 10)

	require.NoError(t, AdjustStock(db, "P001", 5))
	assert.Equal(t, 15, stockOf(t, db, "P001"))
}

func TestAdjustStockRefusesNegative(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "P001", 3)

	err := AdjustStock(db, "P001", -4)
	var is *apperr.InsufficientStockError
	require.ErrorAs(t, err, &is)
	assert.Equal(t, "P001", is.ProductID)
	assert.Equal(t, 3, stockOf(t, db, "P001"))
}

func TestAdjustStockExactDepletion(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "P001", 4)

	require.NoError(t, AdjustStock(db, "P001", -4))
	assert.Equal(t, 0, stockOf(t, db, "P001"))
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	db := openTestDB(t)

	err := AdjustStock(db, "NOPE", -1)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Entity)
}
