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

type LoanInput struct {
	SupplierID string          `json:"S_RegisterID" validate:"required"`
	Amount     decimal.Decimal `json:"Loan_Amount" validate:"required"`
	Duration   int             `json:"Duration" validate:"required,gt=0"`
	Purpose    string          `json:"PurposeOfLoan"`
}

// POST /api/supplierLoan/create
// Monthly amount and due date are derived from amount and duration.
func CreateLoanHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoanInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}
		if body.Amount.Sign() <= 0 {
			return &apperr.ValidationError{Field: "Loan_Amount", Reason: "must be positive"}
		}

		loan := models.Loan{
			SupplierID:    body.SupplierID,
			Amount:        body.Amount,
			Duration:      body.Duration,
			Purpose:       body.Purpose,
			MonthlyAmount: body.Amount.DivRound(decimal.NewFromInt(int64(body.Duration)), 2),
			DueDate:       time.Now().AddDate(0, body.Duration, 0),
			Status:        models.LoanStatusPending,
		}
		if err := db.Create(&loan).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Loan created successfully",
			"LoanID":  loan.ID,
		})
	}
}

// GET /api/supplierLoan/all
func ListLoansHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Loan
		if err := db.Preload("Supplier").
			Order("created_at desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierLoan/supplier/:supplierId
func ListLoansBySupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Loan
		if err := db.Where("supplier_id = ?", c.Params("supplierId")).
			Order("created_at desc, id desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplierLoan/:id
func GetLoanHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loan models.Loan
		if err := db.First(&loan, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Loan", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(loan)
	}
}

// PUT /api/supplierLoan/update/:id
// Monthly amount and due date are recomputed from the new figures.
func UpdateLoanHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loan models.Loan
		if err := db.First(&loan, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Loan", ID: c.Params("id")}
			}
			return err
		}

		var body struct {
			Amount   *decimal.Decimal `json:"Loan_Amount"`
			Duration *int             `json:"Duration"`
			Purpose  string           `json:"PurposeOfLoan"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		amount := loan.Amount
		if body.Amount != nil {
			if body.Amount.Sign() <= 0 {
				return &apperr.ValidationError{Field: "Loan_Amount", Reason: "must be positive"}
			}
			amount = *body.Amount
		}
		duration := loan.Duration
		if body.Duration != nil {
			if *body.Duration <= 0 {
				return &apperr.ValidationError{Field: "Duration", Reason: "must be positive"}
			}
			duration = *body.Duration
		}

		updates := map[string]interface{}{
			"amount":         amount,
			"duration":       duration,
			"monthly_amount": amount.DivRound(decimal.NewFromInt(int64(duration)), 2),
			"due_date":       loan.CreatedAt.AddDate(0, duration, 0),
		}
		if body.Purpose != "" {
			updates["purpose"] = body.Purpose
		}

		if err := db.Model(&loan).Updates(updates).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Loan updated successfully"})
	}
}

// PUT /api/supplierLoan/updateStatus/:id
func UpdateLoanStatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Status models.LoanStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Status == "" {
			return &apperr.ValidationError{Field: "status"}
		}
		res := db.Model(&models.Loan{}).Where("id = ?", c.Params("id")).
			Update("status", body.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Loan", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Loan status updated successfully"})
	}
}

// DELETE /api/supplierLoan/delete/:id
func DeleteLoanHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Loan{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Loan", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Loan deleted successfully"})
	}
}

// GET /api/supplierLoan/statistics
func LoanStatisticsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats struct {
			TotalLoans       int64           `json:"totalLoans"`
			PendingLoans     int64           `json:"pendingLoans"`
			PaidLoans        int64           `json:"paidLoans"`
			OverdueLoans     int64           `json:"overdueLoans"`
			OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
		}
		if err := db.Model(&models.Loan{}).Count(&stats.TotalLoans).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Loan{}).
			Where("status = ?", models.LoanStatusPending).
			Count(&stats.PendingLoans).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Loan{}).
			Where("status = ?", models.LoanStatusPaid).
			Count(&stats.PaidLoans).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Loan{}).
			Where("status <> ? AND due_date < ?", models.LoanStatusPaid, time.Now()).
			Count(&stats.OverdueLoans).Error; err != nil {
			return err
		}
		var agg struct {
			Total decimal.Decimal
		}
		if err := db.Model(&models.Loan{}).
			Where("status <> ?", models.LoanStatusPaid).
			Select("COALESCE(SUM(amount), 0) AS total").
			Scan(&agg).Error; err != nil {
			return err
		}
		stats.OutstandingTotal = agg.Total
		return c.JSON(stats)
	}
}
