package http

import (
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listAuthorizedUsersHandler struct {
	logger        *logrus.Logger
	allowlistRepo allowlist.Repository
}

func NewListAuthorizedUsersHandler(
	logger *logrus.Logger,
	allowlistRepo allowlist.Repository,
) Handler {
	return &listAuthorizedUsersHandler{
		logger:        logger,
		allowlistRepo: allowlistRepo,
	}
}

// Handle @Summary List allow-list entries
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{} "All allow-list entries, newest first"
// @Failure 403 {object} map[string]interface{} "Caller is not an active admin"
// @Router /api/v1/admin/users [get]
func (h *listAuthorizedUsersHandler) Handle(c *fiber.Ctx) error {
	entries, err := h.allowlistRepo.List(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list allow-list entries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if entries == nil {
		entries = []allowlist.Entry{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": entries})
}
