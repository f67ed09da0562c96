package http

import (
	"errors"
	"strings"

	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	domain "github.com/devfest-tools/modgate/pkg/domain/errors"
	"github.com/devfest-tools/modgate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteAuthorizedUserHandler struct {
	logger        *logrus.Logger
	allowlistRepo allowlist.Repository
}

func NewDeleteAuthorizedUserHandler(
	logger *logrus.Logger,
	allowlistRepo allowlist.Repository,
) Handler {
	return &deleteAuthorizedUserHandler{
		logger:        logger,
		allowlistRepo: allowlistRepo,
	}
}

// Handle @Summary Remove an allow-list entry
// @Description Deletes an entry by id. Admins cannot delete their own entry; a missing id is a no-op.
// @Tags Admin
// @Param id query string true "Entry ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Success 204 "Entry did not exist"
// @Failure 400 {object} map[string]interface{} "Self-delete attempt or missing id"
// @Router /api/v1/admin/users [delete]
func (h *deleteAuthorizedUserHandler) Handle(c *fiber.Ctx) error {
	rawID := c.Query("id")
	if rawID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}

	entry, err := h.allowlistRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			// Nothing to delete; deliberately not an error.
			return c.SendStatus(fiber.StatusNoContent)
		}
		h.logger.WithError(err).Error("failed to fetch allow-list entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	claim := middleware.IdentityFromCtx(c)
	if claim != nil && strings.EqualFold(claim.Email, entry.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot delete your own admin account",
		})
	}

	if err := h.allowlistRepo.Delete(c.Context(), entry.ID); err != nil {
		h.logger.WithError(err).WithField("id", rawID).Error("failed to delete allow-list entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully"})
}
