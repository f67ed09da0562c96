package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	authMocks "github.com/devfest-tools/modgate/pkg/app/authorization/mocks"
	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminTestApp(authorizer *authMocks.Checker, claim *jwt.IdentityClaim) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claim != nil {
			c.Locals(common.IdentityContextKey, claim)
		}
		return c.Next()
	})
	app.Use(NewAdminAuthMiddleware(logrus.New(), authorizer).Middleware())
	app.Get("/admin-only", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAdminAuthMiddleware_AllowsAdmin(t *testing.T) {
	authorizer := new(authMocks.Checker)
	authorizer.On("IsAdmin", mock.Anything, "admin@example.com").Return(true)

	app := adminTestApp(authorizer, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAdminAuthMiddleware_RejectsNonAdmin(t *testing.T) {
	authorizer := new(authMocks.Checker)
	authorizer.On("IsAdmin", mock.Anything, "dev@example.com").Return(false)

	app := adminTestApp(authorizer, &jwt.IdentityClaim{Email: "dev@example.com"})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Admin access required", body["error"])
}

func TestAdminAuthMiddleware_RejectsAnonymous(t *testing.T) {
	authorizer := new(authMocks.Checker)

	app := adminTestApp(authorizer, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	authorizer.AssertNotCalled(t, "IsAdmin")
}
