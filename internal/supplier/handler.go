package supplier

import (
	"errors"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"
	"teasupply-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SupplierInput struct {
	ID            string `json:"S_RegisterID" validate:"required"`
	FullName      string `json:"S_FullName" validate:"required"`
	Address       string `json:"S_Address"`
	ContactNo     string `json:"S_ContactNo"`
	Email         string `json:"Email" validate:"omitempty,email"`
	AccountNumber string `json:"AccountNumber"`
	BankName      string `json:"BankName"`
	Branch        string `json:"Branch"`
	Username      string `json:"Username" validate:"required"`
	Password      string `json:"Password" validate:"required,min=6"`
}

// POST /api/supplier/create
func CreateSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplierInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		supplier := models.Supplier{
			ID:            body.ID,
			FullName:      body.FullName,
			Address:       body.Address,
			ContactNo:     body.ContactNo,
			Email:         body.Email,
			AccountNumber: body.AccountNumber,
			BankName:      body.BankName,
			Branch:        body.Branch,
			Username:      body.Username,
			PasswordHash:  string(hash),
		}
		if err := db.Create(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Supplier already exists")
			}
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Supplier created successfully",
			"S_RegisterID": supplier.ID,
		})
	}
}

// GET /api/supplier/all
func ListSuppliersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Supplier
		if err := db.Order("id").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/supplier/:id
func GetSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Supplier", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(supplier)
	}
}

// PUT /api/supplier/update/:id
// Password is optional here; when present it is re-hashed.
func UpdateSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := db.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Supplier", ID: c.Params("id")}
			}
			return err
		}

		var body struct {
			FullName      string `json:"S_FullName"`
			Address       string `json:"S_Address"`
			ContactNo     string `json:"S_ContactNo"`
			Email         string `json:"Email"`
			AccountNumber string `json:"AccountNumber"`
			BankName      string `json:"BankName"`
			Branch        string `json:"Branch"`
			Username      string `json:"Username"`
			Password      string `json:"Password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.FullName != "" {
			updates["full_name"] = body.FullName
		}
		if body.Address != "" {
			updates["address"] = body.Address
		}
		if body.ContactNo != "" {
			updates["contact_no"] = body.ContactNo
		}
		if body.Email != "" {
			updates["email"] = body.Email
		}
		if body.AccountNumber != "" {
			updates["account_number"] = body.AccountNumber
		}
		if body.BankName != "" {
			updates["bank_name"] = body.BankName
		}
		if body.Branch != "" {
			updates["branch"] = body.Branch
		}
		if body.Username != "" {
			updates["username"] = body.Username
		}
		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password_hash"] = string(hash)
		}

		if len(updates) > 0 {
			if err := db.Model(&supplier).Updates(updates).Error; err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "Supplier updated successfully"})
	}
}

// DELETE /api/supplier/delete/:id
func DeleteSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Supplier{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Supplier", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
	}
}
