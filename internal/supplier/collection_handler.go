package supplier

import (
	"errors"
	"time"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"
	"teasupply-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CollectionInput struct {
	SupplierID     string          `json:"S_RegisterID" validate:"required"`
	CurrentRate    decimal.Decimal `json:"Current_Rate" validate:"required"`
	TeaBagWeightKg float64         `json:"TeaBagWeight_kg" validate:"required,gt=0"`
	WaterKg        float64         `json:"Water_kg" validate:"gte=0"`
	BagKg          float64         `json:"Bag_kg" validate:"gte=0"`
	DateTime       *time.Time      `json:"DateTime"`
}

// POST /api/supplierCollection/create
// BalanceWeight is always derived here, never taken from the client.
func CreateCollectionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CollectionInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}

		balance := body.TeaBagWeightKg - body.WaterKg - body.BagKg
		if balance < 0 {
			return &apperr.ValidationError{Field: "BalanceWeight_kg", Reason: "must not be negative"}
		}

		collectedAt := time.Now()
		if body.DateTime != nil {
			collectedAt = *body.DateTime
		}

		collection := models.Collection{
			SupplierID:      body.SupplierID,
			CurrentRate:     body.CurrentRate,
			TeaBagWeightKg:  body.TeaBagWeightKg,
			WaterKg:         body.WaterKg,
			BagKg:           body.BagKg,
			BalanceWeightKg: balance,
			CollectedAt:     collectedAt,
		}
		if err := db.Create(&collection).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":       "Collection recorded successfully",
			"Collection_ID": collection.ID,
		})
	}
}

// GET /api/supplierCollection/all
func ListCollectionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Collection
		if err := db.Preload("Supplier").
			Order("collected_at desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierCollection/supplier/:supplierId
func ListCollectionsBySupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Collection
		if err := db.Where("supplier_id = ?", c.Params("supplierId")).
			Order("collected_at desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierCollection/:id
func GetCollectionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var collection models.Collection
		if err := db.First(&collection, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Collection", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(collection)
	}
}

// DELETE /api/supplierCollection/delete/:id
func DeleteCollectionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Collection{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Collection", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Collection deleted successfully"})
	}
}

// GET /api/supplierCollection/statistics
func CollectionStatisticsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats struct {
			TotalCollections int64           `json:"totalCollections"`
			TotalWeightKg    float64         `json:"totalWeightKg"`
			AverageRate      decimal.Decimal `json:"averageRate"`
		}
		if err := db.Model(&models.Collection{}).Count(&stats.TotalCollections).Error; err != nil {
			return err
		}
		var agg struct {
			TotalWeight float64
			AvgRate     decimal.Decimal
		}
		if err := db.Model(&models.Collection{}).
			Select("COALESCE(SUM(balance_weight_kg), 0) AS total_weight, COALESCE(AVG(current_rate), 0) AS avg_rate").
			Scan(&agg).Error; err != nil {
			return err
		}
		stats.TotalWeightKg = agg.TotalWeight
		stats.AverageRate = agg.AvgRate
		return c.JSON(stats)
	}
}
