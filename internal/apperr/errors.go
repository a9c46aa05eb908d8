package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ValidationError: a required field is missing or invalid. Detected before
// any transaction starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// NotFoundError: a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InsufficientStockError: applying Requested to the product's stock would
// drive it negative. The enclosing transaction must roll back entirely.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// FiberErrorHandler maps the error taxonomy to JSON bodies. Unexpected
// errors are logged and reported as 500 without leaking internals.
func FiberErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			ve *ValidationError
			nf *NotFoundError
			is *InsufficientStockError
		)
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   ve.Error(),
			})
		case errors.As(err, &nf):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("%s not found", nf.Entity),
				"error":   nf.Error(),
			})
		case errors.As(err, &is):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Not enough stock available",
				"error":   is.Error(),
			})
		}

		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"message": e.Message,
				"error":   e.Message,
			})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unexpected server error",
			"error":   err.Error(),
		})
	}
}
