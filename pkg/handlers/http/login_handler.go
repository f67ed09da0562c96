package http

import (
	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	"github.com/devfest-tools/modgate/pkg/infra/hash"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginHandler struct {
	logger     *logrus.Logger
	cfg        *config.ServerConfig
	users      user.Repository
	allowlist  allowlist.Repository
	hasher     hash.PasswordHasher
	jwtManager jwt.Manager
}

func NewLoginHandler(
	logger *logrus.Logger,
	cfg *config.ServerConfig,
	users user.Repository,
	allowlistRepo allowlist.Repository,
	hasher hash.PasswordHasher,
	jwtManager jwt.Manager,
) Handler {
	return &loginHandler{
		logger:     logger,
		cfg:        cfg,
		users:      users,
		allowlist:  allowlistRepo,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

// Handle @Summary Log in
// @Description Verifies credentials and issues a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Authenticated user"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}

	entity, err := h.users.GetByEmail(c.Context(), req.Email)
	if err != nil || !h.hasher.Compare(req.Password, entity.Password) {
		// Unknown email and wrong password are indistinguishable on purpose.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := issueSession(c.Context(), h.jwtManager, h.allowlist, entity)
	if err != nil {
		h.logger.WithError(err).Error("failed to sign session token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}
	setSessionCookie(c, h.cfg, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok": true,
		"user": fiber.Map{
			"id":    entity.ID,
			"name":  entity.Name,
			"email": entity.Email,
		},
	})
}
