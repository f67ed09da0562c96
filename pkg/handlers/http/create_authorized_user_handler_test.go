package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	allowlistMocks "github.com/devfest-tools/modgate/pkg/domain/allowlist/mocks"
	domain "github.com/devfest-tools/modgate/pkg/domain/errors"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestApp(repo allowlist.Repository) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(common.IdentityContextKey, &jwt.IdentityClaim{Email: "admin@example.com"})
		return c.Next()
	})
	handler := NewCreateAuthorizedUserHandler(logrus.New(), repo)
	app.Post("/api/v1/admin/users", handler.Handle)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (map[string]interface{}, int) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return parsed, resp.StatusCode
}

func TestCreateAuthorizedUserHandler_SingleEmail(t *testing.T) {
	repo := new(allowlistMocks.Repository)

	var created *allowlist.Entry
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*allowlist.Entry)
		}).
		Return(nil)

	app := createTestApp(repo)

	body, status := postJSON(t, app, "/api/v1/admin/users", map[string]string{
		"email": "new@example.com",
		"name":  "New Person",
	})

	assert.Equal(t, 201, status)
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "new@example.com", first["email"])
	assert.Equal(t, "created", first["status"])

	require.NotNil(t, created)
	assert.Equal(t, allowlist.RoleModerator, created.Role)
	assert.True(t, created.Active)
	assert.Equal(t, "admin@example.com", created.AddedBy)
}

func TestCreateAuthorizedUserHandler_BulkReportsExisting(t *testing.T) {
	repo := new(allowlistMocks.Repository)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *allowlist.Entry) bool {
		return e.Email == "already@example.com"
	})).Return(domain.ErrDuplicateEmail)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *allowlist.Entry) bool {
		return e.Email == "fresh@example.com"
	})).Return(nil)

	app := createTestApp(repo)

	body, status := postJSON(t, app, "/api/v1/admin/users", map[string]interface{}{
		"emails": []string{"already@example.com", "fresh@example.com"},
	})

	assert.Equal(t, 201, status)
	results := body["results"].([]interface{})
	require.Len(t, results, 2)

	first := results[0].(map[string]interface{})
	assert.Equal(t, "exists", first["status"])
	second := results[1].(map[string]interface{})
	assert.Equal(t, "created", second["status"])
}

func TestCreateAuthorizedUserHandler_NoEmails(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	app := createTestApp(repo)

	body, status := postJSON(t, app, "/api/v1/admin/users", map[string]interface{}{
		"emails": []string{"  ", ""},
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, "No valid email(s) provided", body["error"])
	repo.AssertNotCalled(t, "Create")
}
