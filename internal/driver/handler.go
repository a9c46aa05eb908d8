package driver

import (
	"errors"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"
	"teasupply-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DriverInput struct {
	ID            string `json:"D_RegisterID" validate:"required"`
	FullName      string `json:"D_FullName" validate:"required"`
	ContactNumber string `json:"D_ContactNumber"`
	Email         string `json:"Email" validate:"omitempty,email"`
	VehicleNumber string `json:"VehicleNumber"`
	Route         string `json:"Route"`
	SerialCode    string `json:"Serial_Code"`
}

// POST /api/driver/create
func CreateDriverHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DriverInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}

		driver := models.Driver{
			ID:            body.ID,
			FullName:      body.FullName,
			ContactNumber: body.ContactNumber,
			Email:         body.Email,
			VehicleNumber: body.VehicleNumber,
			Route:         body.Route,
			SerialCode:    body.SerialCode,
		}
		if err := db.Create(&driver).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Driver already exists")
			}
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Driver created successfully",
			"D_RegisterID": driver.ID,
		})
	}
}

// GET /api/driver/all
func ListDriversHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Driver
		if err := db.Order("id").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// GET /api/driver/:id
func GetDriverHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var driver models.Driver
		if err := db.First(&driver, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Driver", ID: c.Params("id")}
			}
			return err
		}
		return c.JSON(driver)
	}
}

// PUT /api/driver/update/:id
func UpdateDriverHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var driver models.Driver
		if err := db.First(&driver, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Driver", ID: c.Params("id")}
			}
			return err
		}

		var body struct {
			FullName      string `json:"D_FullName"`
			ContactNumber string `json:"D_ContactNumber"`
			Email         string `json:"Email"`
			VehicleNumber string `json:"VehicleNumber"`
			Route         string `json:"Route"`
			SerialCode    string `json:"Serial_Code"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.FullName != "" {
			updates["full_name"] = body.FullName
		}
		if body.ContactNumber != "" {
			updates["contact_number"] = body.ContactNumber
		}
		if body.Email != "" {
			updates["email"] = body.Email
		}
		if body.VehicleNumber != "" {
			updates["vehicle_number"] = body.VehicleNumber
		}
		if body.Route != "" {
			updates["route"] = body.Route
		}
		if body.SerialCode != "" {
			updates["serial_code"] = body.SerialCode
		}

		if len(updates) > 0 {
			if err := db.Model(&driver).Updates(updates).Error; err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "Driver updated successfully"})
	}
}

// DELETE /api/driver/delete/:id
func DeleteDriverHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := db.Delete(&models.Driver{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Driver", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Driver deleted successfully"})
	}
}
