package notification

import (
	"strconv"

	"teasupply-backend/internal/apperr"
	"teasupply-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pusher/pusher-http-go/v5"
	"gorm.io/gorm"
)

// GET /api/notifications/supplier/:supplierId
func ListSupplierNotificationsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.SupplierNotification
		if err := db.Where("supplier_id = ?", c.Params("supplierId")).
			Order("created_at desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// PUT /api/notifications/supplier/:id/read
func MarkSupplierNotificationReadHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return &apperr.ValidationError{Field: "id", Reason: "is invalid"}
		}
		res := db.Model(&models.SupplierNotification{}).Where("id = ?", id).
			Update("is_read", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Notification", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Notification marked as read"})
	}
}

// GET /api/notifications/driver/:driverId
func ListDriverNotificationsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.DriverNotification
		if err := db.Where("driver_id = ?", c.Params("driverId")).
			Order("created_at desc").Find(&rows).Error; err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// PUT /api/notifications/driver/:id/read
func MarkDriverNotificationReadHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return &apperr.ValidationError{Field: "id", Reason: "is invalid"}
		}
		res := db.Model(&models.DriverNotification{}).Where("id = ?", id).
			Update("is_read", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Entity: "Notification", ID: c.Params("id")}
		}
		return c.JSON(fiber.Map{"message": "Notification marked as read"})
	}
}

// POST /pusher/auth
// Authorizes a private channel subscription for an authenticated client.
func PusherAuthHandler(client *pusher.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Push notifications are not configured")
		}
		response, err := client.AuthorizePrivateChannel(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Channel authorization failed")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(response)
	}
}
