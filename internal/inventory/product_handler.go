package inventory

import (
	"errors"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"
	"teasupply-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	ID         string          `json:"ProductID" validate:"required"`
	Name       string          `json:"ProductName" validate:"required"`
	RatePerBag decimal.Decimal `json:"Rate_per_Bag" validate:"required"`
	StockBag   int             `json:"Stock_bag" validate:"gte=0"`
}

// POST /api/product/create
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}
		if body.RatePerBag.Sign() <= 0 {
			return &apperr.ValidationError{Field: "Rate_per_Bag", Reason: "must be positive"}
		}

		product := models.Product{
			ID:         body.ID,
			Name:       body.Name,
			RatePerBag: body.RatePerBag,
			StockBag:   body.StockBag,
		}
		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Product already exists")
			}
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Product created successfully",
			"ProductID": product.ID,
		})
	}
}

// GET /api/product/all
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Product
		if err := db.Order("id").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/product/:id
func GetProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Product", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(product)
	}
}

// PUT /api/product/update/:id
// Rate/name update only. Stock moves through the stock endpoint or orders.
func UpdateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Product", ID: c.Params("id")}
			}
			return err
		}

		var body struct {
			Name       string           `json:"ProductName"`
			RatePerBag *decimal.Decimal `json:"Rate_per_Bag"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.Name != "" {
			updates["name"] = body.Name
		}
		if body.RatePerBag != nil {
			if body.RatePerBag.Sign() <= 0 {
				return &apperr.ValidationError{Field: "Rate_per_Bag", Reason: "must be positive"}
			}
			updates["rate_per_bag"] = *body.RatePerBag
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "Product updated successfully"})
	}
}

// PUT /api/product/stock/:id
// Applies a signed delta through the same guard the order flow uses, so a
// manual restock or correction can never drive stock negative either.
func AdjustStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Delta int `json:"Stock_bag"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Delta == 0 {
			return &apperr.ValidationError{Field: "Stock_bag", Reason: "must not be zero"}
		}

		tx := db.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		if err := AdjustStock(tx, c.Params("id"), body.Delta); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit().Error; err != nil {
			return err
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":   "Stock updated successfully",
			"Stock_bag": product.StockBag,
		})
	}
}

// DELETE /api/product/delete/:id
func DeleteProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Product{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Product", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}
