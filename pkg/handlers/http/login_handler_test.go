package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	allowlistMocks "github.com/devfest-tools/modgate/pkg/domain/allowlist/mocks"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	userMocks "github.com/devfest-tools/modgate/pkg/domain/user/mocks"
	hashMocks "github.com/devfest-tools/modgate/pkg/infra/hash/mocks"
	jwtMocks "github.com/devfest-tools/modgate/pkg/infra/jwt/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loginFixture struct {
	users      *userMocks.Repository
	allowlist  *allowlistMocks.Repository
	hasher     *hashMocks.PasswordHasher
	jwtManager *jwtMocks.Manager
	app        *fiber.App
}

func newLoginFixture() *loginFixture {
	f := &loginFixture{
		users:      new(userMocks.Repository),
		allowlist:  new(allowlistMocks.Repository),
		hasher:     new(hashMocks.PasswordHasher),
		jwtManager: new(jwtMocks.Manager),
	}
	cfg := &config.ServerConfig{SessionTTL: time.Hour}
	handler := NewLoginHandler(logrus.New(), cfg, f.users, f.allowlist, f.hasher, f.jwtManager)

	app := fiber.New()
	app.Post("/api/v1/auth/login", handler.Handle)
	f.app = app
	return f
}

func loginRequestBody(t *testing.T, email, password string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestLoginHandler_Success(t *testing.T) {
	f := newLoginFixture()
	entity := &user.User{
		ID:       uuid.New(),
		Name:     "Dev",
		Email:    "dev@example.com",
		Password: "$2a$10$hashed",
	}

	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(entity, nil)
	f.hasher.On("Compare", "hunter2", entity.Password).Return(true)
	f.allowlist.On("GetByEmail", mock.Anything, "dev@example.com").
		Return(&allowlist.Entry{Email: "dev@example.com", Role: allowlist.RoleModerator, Active: true}, nil)
	f.jwtManager.On("CreateToken", entity.ID.String(), "dev@example.com", allowlist.RoleModerator, true).
		Return("signed-token", nil)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", loginRequestBody(t, "dev@example.com", "hunter2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginHandler_UnknownEmail(t *testing.T) {
	f := newLoginFixture()
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, errors.New("record not found"))

	req := httptest.NewRequest("POST", "/api/v1/auth/login", loginRequestBody(t, "ghost@example.com", "hunter2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
	f.jwtManager.AssertNotCalled(t, "CreateToken")
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	f := newLoginFixture()
	entity := &user.User{ID: uuid.New(), Email: "dev@example.com", Password: "$2a$10$hashed"}

	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(entity, nil)
	f.hasher.On("Compare", "wrong", entity.Password).Return(false)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", loginRequestBody(t, "dev@example.com", "wrong"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
	f.jwtManager.AssertNotCalled(t, "CreateToken")
}

func TestLoginHandler_MissingFields(t *testing.T) {
	f := newLoginFixture()

	req := httptest.NewRequest("POST", "/api/v1/auth/login", loginRequestBody(t, "", ""))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 400, resp.StatusCode)
	f.users.AssertNotCalled(t, "GetByEmail")
}

func TestLoginHandler_NoAllowListEntryStillLogsIn(t *testing.T) {
	f := newLoginFixture()
	entity := &user.User{ID: uuid.New(), Email: "plain@example.com", Password: "$2a$10$hashed"}

	f.users.On("GetByEmail", mock.Anything, "plain@example.com").Return(entity, nil)
	f.hasher.On("Compare", "hunter2", entity.Password).Return(true)
	f.allowlist.On("GetByEmail", mock.Anything, "plain@example.com").
		Return(nil, errors.New("record not found"))
	f.jwtManager.On("CreateToken", entity.ID.String(), "plain@example.com", allowlist.RoleUser, false).
		Return("signed-token", nil)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", loginRequestBody(t, "plain@example.com", "hunter2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
}
