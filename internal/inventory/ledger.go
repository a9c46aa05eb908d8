package inventory

import (
	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"gorm.io/gorm"
)

// AdjustStock applies a signed delta to a product's stock. Negative deltas
// consume stock, positive deltas restore it. The guard and the update are a
// single statement, so two concurrent adjustments cannot both pass the
// check against the same stale value; the row never goes negative.
//
// The caller owns the transaction: on InsufficientStockError the whole tx
// must roll back.
func AdjustStock(tx *gorm.DB, productID string, delta int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_bag + ? >= 0", productID, delta).
		UpdateColumn("stock_bag", gorm.Expr("stock_bag + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// no row updated: either the product is missing or the guard fired
	var count int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &apperr.NotFoundError{Entity: "Product", ID: productID}
	}
	return &apperr.InsufficientStockError{ProductID: productID, Requested: delta}
}
