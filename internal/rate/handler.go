package rate

import (
	"errors"
	"time"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /api/rate/:id
func GetRateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cfg models.RateConfig
		if err := db.First(&cfg, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Rate", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(cfg)
	}
}

// PUT /api/rate/:id
// Upserts the factory-wide leaf rate. Row 1 is the one clients read.
func UpdateRateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			RatePerKg decimal.Decimal `json:"Rate_Per_Kg"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.RatePerKg.Sign() <= 0 {
			return &apperr.ValidationError{Field: "Rate_Per_Kg", Reason: "must be positive"}
		}

		var cfg models.RateConfig
		err := db.First(&cfg, "id = ?", c.Params("id")).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cfg = models.RateConfig{
				RatePerKg:     body.RatePerKg,
				EffectiveDate: time.Now(),
			}
			if err := db.Create(&cfg).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := db.Model(&cfg).Updates(map[string]interface{}{
				"rate_per_kg":    body.RatePerKg,
				"effective_date": time.Now(),
			}).Error; err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "Rate updated successfully"})
	}
}
