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

type AdvanceInput struct {
	SupplierID string          `json:"S_RegisterID" validate:"required"`
	Amount     decimal.Decimal `json:"Advance_Amount" validate:"required"`
	Date       *time.Time      `json:"Date"`
}

// POST /api/supplierAdvance/create
func CreateAdvanceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdvanceInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}
		if body.Amount.Sign() <= 0 {
			return &apperr.ValidationError{Field: "Advance_Amount", Reason: "must be positive"}
		}

		date := time.Now()
		if body.Date != nil {
			date = *body.Date
		}
		advance := models.Advance{
			SupplierID: body.SupplierID,
			Amount:     body.Amount,
			Date:       date,
			Status:     models.AdvanceStatusPending,
		}
		if err := db.Create(&advance).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Advance created successfully",
			"AdvanceID": advance.ID,
		})
	}
}

// GET /api/supplierAdvance/all
func ListAdvancesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Advance
		if err := db.Preload("Supplier").
			Order("date desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierAdvance/supplier/:supplierId
func ListAdvancesBySupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Advance
		if err := db.Where("supplier_id = ?", c.Params("supplierId")).
			Order("date desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierAdvance/:id
func GetAdvanceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var advance models.Advance
		if err := db.First(&advance, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Advance", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(advance)
	}
}

// PUT /api/supplierAdvance/update/:id
func UpdateAdvanceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var advance models.Advance
		if err := db.First(&advance, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Advance", ID: c.Params("id")}
			}
			return err
		}

		var body struct {
			Amount *decimal.Decimal `json:"Advance_Amount"`
			Date   *time.Time       `json:"Date"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.Amount != nil {
			if body.Amount.Sign() <= 0 {
				return &apperr.ValidationError{Field: "Advance_Amount", Reason: "must be positive"}
			}
			updates["amount"] = *body.Amount
		}
		if body.Date != nil {
			updates["date"] = *body.Date
		}

		if len(updates) > 0 {
			if err := db.Model(&advance).Updates(updates).Error; err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "Advance updated successfully"})
	}
}

// PUT /api/supplierAdvance/updateStatus/:id
func UpdateAdvanceStatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Status models.AdvanceStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Status == "" {
			return &apperr.ValidationError{Field: "status"}
		}
		res := db.Model(&models.Advance{}).Where("id = ?", c.Params("id")).
			Update("status", body.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Advance", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Advance status updated successfully"})
	}
}

// DELETE /api/supplierAdvance/delete/:id
func DeleteAdvanceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Advance{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Advance", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Advance deleted successfully"})
	}
}

// GET /api/supplierAdvance/statistics
func AdvanceStatisticsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats struct {
			TotalAdvances   int64           `json:"totalAdvances"`
			PendingAdvances int64           `json:"pendingAdvances"`
			PendingTotal    decimal.Decimal `json:"pendingTotal"`
		}
		if err := db.Model(&models.Advance{}).Count(&stats.TotalAdvances).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Advance{}).
			Where("status = ?", models.AdvanceStatusPending).
			Count(&stats.PendingAdvances).Error; err != nil {
			return err
		}
		var agg struct {
			Total decimal.Decimal
		}
		if err := db.Model(&models.Advance{}).
			Where("status <> ?", models.AdvanceStatusTransfered).
			Select("COALESCE(SUM(amount), 0) AS total").
			Scan(&agg).Error; err != nil {
			return err
		}
		stats.PendingTotal = agg.Total
		return c.JSON(stats)
	}
}
