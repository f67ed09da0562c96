package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	jwtMocks "github.com/devfest-tools/modgate/pkg/infra/jwt/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestApp(manager jwt.Manager) *fiber.App {
	app := fiber.New()
	app.Use(NewSessionMiddleware(logrus.New(), manager).Middleware())
	app.Get("/probe", func(c *fiber.Ctx) error {
		claim := IdentityFromCtx(c)
		if claim == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(claim.Email)
	})
	return app
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	manager := new(jwtMocks.Manager)
	manager.On("DecodeToken", "good-token").Return(&jwt.IdentityClaim{
		UserID: "user-1",
		Email:  "dev@example.com",
	}, nil)

	app := sessionTestApp(manager)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: "good-token"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "dev@example.com", string(body))
}

func TestSessionMiddleware_MissingCookieIsAnonymous(t *testing.T) {
	manager := new(jwtMocks.Manager)

	app := sessionTestApp(manager)

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil), -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))
	manager.AssertNotCalled(t, "DecodeToken")
}

func TestSessionMiddleware_RejectedTokenIsAnonymous(t *testing.T) {
	manager := new(jwtMocks.Manager)
	manager.On("DecodeToken", "bad-token").Return(nil, jwt.ErrInvalidToken)

	app := sessionTestApp(manager)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: "bad-token"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))
}
