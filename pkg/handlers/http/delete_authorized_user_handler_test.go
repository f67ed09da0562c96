package http

import (
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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deleteTestApp(repo allowlist.Repository, claim *jwt.IdentityClaim) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if claim != nil {
			c.Locals(common.IdentityContextKey, claim)
		}
		return c.Next()
	})
	handler := NewDeleteAuthorizedUserHandler(logrus.New(), repo)
	app.Delete("/api/v1/admin/users", handler.Handle)
	return app
}

func TestDeleteAuthorizedUserHandler_Success(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	entryID := uuid.New()
	entry := &allowlist.Entry{ID: entryID, Email: "other@example.com", Role: allowlist.RoleModerator, Active: true}

	repo.On("GetByID", mock.Anything, entryID).Return(entry, nil)
	repo.On("Delete", mock.Anything, entryID).Return(nil)

	app := deleteTestApp(repo, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/users?id="+entryID.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "User deleted successfully", body["message"])
}

func TestDeleteAuthorizedUserHandler_SelfDeleteRejected(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	entryID := uuid.New()
	entry := &allowlist.Entry{ID: entryID, Email: "Admin@Example.com", Role: allowlist.RoleAdmin, Active: true}

	repo.On("GetByID", mock.Anything, entryID).Return(entry, nil)

	app := deleteTestApp(repo, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/users?id="+entryID.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Cannot delete your own admin account", body["error"])
	repo.AssertNotCalled(t, "Delete")
}

func TestDeleteAuthorizedUserHandler_MissingEntryIsNoOp(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	entryID := uuid.New()

	repo.On("GetByID", mock.Anything, entryID).
		Return(nil, domain.NewNotFoundError("allowlist entry", entryID))

	app := deleteTestApp(repo, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/users?id="+entryID.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	repo.AssertNotCalled(t, "Delete")
}

func TestDeleteAuthorizedUserHandler_MissingID(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	app := deleteTestApp(repo, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/users", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDeleteAuthorizedUserHandler_MalformedID(t *testing.T) {
	repo := new(allowlistMocks.Repository)
	app := deleteTestApp(repo, &jwt.IdentityClaim{Email: "admin@example.com"})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/users?id=not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
