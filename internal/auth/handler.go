package auth

import (
	"errors"
	"strings"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/config"
	"teasupply-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OTPSender mails a one-time code. Satisfied by *mailer.Mailer.
type OTPSender interface {
	SendOTP(to, code string) error
}

type LoginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// POST /api/supplier/login
func SupplierLoginHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		var supplier models.Supplier
		if err := db.Where("username = ?", body.Username).First(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(supplier.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, supplier.ID, RoleSupplier)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"token": token,
			"supplier": fiber.Map{
				"S_RegisterID": supplier.ID,
				"S_FullName":   supplier.FullName,
				"Username":     supplier.Username,
			},
		})
	}
}

type OTPRequest struct {
	DriverID string `json:"D_RegisterID"`
}

// POST /api/driver/request-otp
// Mails a short-lived code to the driver's registered address. The code
// itself never appears in the response.
func RequestOTPHandler(db *gorm.DB, store *OTPStore, sender OTPSender, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OTPRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.DriverID == "" {
			return &apperr.ValidationError{Field: "D_RegisterID"}
		}

		var driver models.Driver
		if err := db.First(&driver, "id = ?", body.DriverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Driver", ID: body.DriverID}
			}
			return err
		}
		if driver.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Driver has no registered email address")
		}

		code, err := store.GenerateOTP(c.Context(), driver.ID)
		if err != nil {
			return err
		}
		if err := sender.SendOTP(driver.Email, code); err != nil {
			log.WithError(err).WithField("driver_id", driver.ID).Error("otp mail failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Could not send the login code")
		}

		return c.JSON(fiber.Map{"message": "Login code sent"})
	}
}

type OTPVerifyRequest struct {
	DriverID string `json:"D_RegisterID"`
	Code     string `json:"Code"`
}

// POST /api/driver/verify-otp
func VerifyOTPHandler(db *gorm.DB, store *OTPStore, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OTPVerifyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.DriverID == "" {
			return &apperr.ValidationError{Field: "D_RegisterID"}
		}
		if body.Code == "" {
			return &apperr.ValidationError{Field: "Code"}
		}

		ok, err := store.VerifyOTP(c.Context(), body.DriverID, body.Code)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired code")
		}

		var driver models.Driver
		if err := db.First(&driver, "id = ?", body.DriverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "Driver", ID: body.DriverID}
			}
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, driver.ID, RoleDriver)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"token": token,
			"driver": fiber.Map{
				"D_RegisterID": driver.ID,
				"D_FullName":   driver.FullName,
				"Route":        driver.Route,
			},
		})
	}
}
