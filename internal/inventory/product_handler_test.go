package inventory

import (
	"net/http/httptest"
	"strings"
	"testing"

	"teasupply-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.FiberErrorHandler(log),
	})
	app.Post("/api/product/create", CreateProductHandler(db))
	return app
}

func postProduct(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/product/create", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestCreateProductDuplicateIsConflict(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(t, db)

	body := `{"ProductID":"P001","ProductName":"Tea Packet 1kg","Rate_per_Bag":100,"Stock_bag":10}`
	assert.Equal(t, fiber.StatusCreated, postProduct(t, app, body))
	// same register id again: a conflict, never a server error
	assert.Equal(t, fiber.StatusConflict, postProduct(t, app, body))
}
