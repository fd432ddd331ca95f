package auth_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/constants"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func TestOnlyRolesGate(t *testing.T) {
	hits := 0
	newApp := func(role string) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals("user_role", role)
			}
			return c.Next()
		})
		app.Post("/guarded",
			authMw.OnlyRoles("Admins only", constants.RoleAdmin),
			func(c *fiber.Ctx) error {
				hits++
				return c.SendStatus(fiber.StatusOK)
			})
		return app
	}

	resp, err := newApp(constants.RoleAdmin).Test(httptest.NewRequest("POST", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, hits)

	// A wrong role is rejected before the handler runs, so the
	// mutation has no side effect.
	resp, err = newApp(constants.RoleStudent).Test(httptest.NewRequest("POST", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, hits)

	// No role local at all means the token never resolved.
	resp, err = newApp("").Test(httptest.NewRequest("POST", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, hits)
}
