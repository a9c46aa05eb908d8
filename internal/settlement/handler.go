package settlement

import (
	"errors"
	"strconv"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func parsePaymentID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, &apperr.ValidationError{Field: "id", Reason: "is invalid"}
	}
	return uint(id), nil
}

// GET /api/supplierPayment/calculate/:supplierId
// Returns the live settlement without persisting anything.
func CalculateHandler(calc *Calculator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stmt, err := calc.Compute(c.Params("supplierId"))
		if err != nil {
			return err
		}
		return c.JSON(stmt)
	}
}

// POST /api/supplierPayment/create
// The amounts are computed server side; the body only names the supplier.
func CreatePaymentHandler(calc *Calculator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			SupplierID string `json:"S_RegisterID"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		payment, err := calc.CreatePayment(body.SupplierID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "Payment created successfully",
			"PaymentsID": payment.ID,
			"payment":    payment,
		})
	}
}

// GET /api/supplierPayment/all
func ListPaymentsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Payment
		if err := db.Preload("Supplier").
			Order("date desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierPayment/:id
func GetPaymentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parsePaymentID(c)
		if err != nil {
			return err
		}
		var payment models.Payment
		if err := db.Preload("Supplier").First(&payment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Payment", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(payment)
	}
}

// GET /api/supplierPayment/supplier/:supplierId
func ListPaymentsBySupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Payment
		if err := db.Where("supplier_id = ?", c.Params("supplierId")).
			Order("date desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// PUT /api/supplierPayment/updateStatus/:id
func UpdatePaymentStatusHandler(calc *Calculator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parsePaymentID(c)
		if err != nil {
			return err
		}
		var body struct {
			Status models.PaymentStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if _, err := calc.UpdatePaymentStatus(id, body.Status); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Payment status updated successfully"})
	}
}

// DELETE /api/supplierPayment/delete/:id
func DeletePaymentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parsePaymentID(c)
		if err != nil {
			return err
		}
		res := db.Delete(&models.Payment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Payment", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
	}
}

// GET /api/supplierPayment/statistics
func PaymentStatisticsHandler(calc *Calculator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := calc.PaymentStatistics()
		if err != nil {
			return err
		}
		return c.JSON(stats)
	}
}
