package auth

import (
	"net/http/httptest"
	"testing"

	"teasupply-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Get("/supplier-only", JWTMiddleware(cfg), RequireRole(RoleSupplier), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func getWithToken(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/supplier-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateToken(testSecret, "S001", RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, getWithToken(t, app, token))
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateToken(testSecret, "D001", RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, getWithToken(t, app, token))
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(t)
	assert.Equal(t, fiber.StatusUnauthorized, getWithToken(t, app, ""))
}

func TestJWTMiddlewareRejectsBadSignature(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateToken("another-secret-another-secret-xx", "S001", RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, getWithToken(t, app, token))
}
