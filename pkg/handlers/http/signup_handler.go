package http

import (
	"errors"
	"strings"

	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	domain "github.com/devfest-tools/modgate/pkg/domain/errors"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	"github.com/devfest-tools/modgate/pkg/infra/hash"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupHandler struct {
	logger     *logrus.Logger
	cfg        *config.ServerConfig
	users      user.Repository
	allowlist  allowlist.Repository
	hasher     hash.PasswordHasher
	jwtManager jwt.Manager
}

func NewSignupHandler(
	logger *logrus.Logger,
	cfg *config.ServerConfig,
	users user.Repository,
	allowlistRepo allowlist.Repository,
	hasher hash.PasswordHasher,
	jwtManager jwt.Manager,
) Handler {
	return &signupHandler{
		logger:     logger,
		cfg:        cfg,
		users:      users,
		allowlist:  allowlistRepo,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

// Handle @Summary Create an account
// @Description Registers a new user and issues a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body signupRequest true "Account details"
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /api/v1/auth/signup [post]
func (h *signupHandler) Handle(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Signup failed"})
	}

	id, err := uuid.NewV6()
	if err != nil {
		h.logger.WithError(err).Error("failed to generate UUID")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Signup failed"})
	}

	entity := &user.User{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: passwordHash,
	}

	if err := h.users.Create(c.Context(), entity); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
		}
		h.logger.WithError(err).Error("failed to create user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Signup failed"})
	}

	token, err := issueSession(c.Context(), h.jwtManager, h.allowlist, entity)
	if err != nil {
		h.logger.WithError(err).Error("failed to sign session token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Signup failed"})
	}
	setSessionCookie(c, h.cfg, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok": true,
		"user": fiber.Map{
			"id":    entity.ID,
			"name":  entity.Name,
			"email": entity.Email,
		},
	})
}
