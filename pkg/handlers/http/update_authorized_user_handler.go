package http

import (
	"errors"

	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	domain "github.com/devfest-tools/modgate/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type updateAuthorizedUserRequest struct {
	ID     string `json:"id"`
	Active *bool  `json:"active"`
	Role   string `json:"role"`
}

type updateAuthorizedUserHandler struct {
	logger        *logrus.Logger
	allowlistRepo allowlist.Repository
}

func NewUpdateAuthorizedUserHandler(
	logger *logrus.Logger,
	allowlistRepo allowlist.Repository,
) Handler {
	return &updateAuthorizedUserHandler{
		logger:        logger,
		allowlistRepo: allowlistRepo,
	}
}

// Handle @Summary Update an allow-list entry
// @Description Toggles the active flag and/or changes the role
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body updateAuthorizedUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Updated entry"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /api/v1/admin/users [put]
func (h *updateAuthorizedUserHandler) Handle(c *fiber.Ctx) error {
	var req updateAuthorizedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}

	entry, err := h.allowlistRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.logger.WithError(err).Error("failed to fetch allow-list entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if req.Active != nil {
		entry.Active = *req.Active
	}
	if req.Role != "" {
		entry.Role = req.Role
	}

	if err := h.allowlistRepo.Update(c.Context(), entry); err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.logger.WithError(err).Error("failed to update allow-list entry")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    entry,
	})
}
