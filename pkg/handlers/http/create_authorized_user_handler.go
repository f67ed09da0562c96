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

type createAuthorizedUserRequest struct {
	Email  string   `json:"email"`
	Emails []string `json:"emails"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
}

type createAuthorizedUserResult struct {
	Email  string           `json:"email"`
	Status string           `json:"status"`
	User   *allowlist.Entry `json:"user,omitempty"`
}

type createAuthorizedUserHandler struct {
	logger        *logrus.Logger
	allowlistRepo allowlist.Repository
}

func NewCreateAuthorizedUserHandler(
	logger *logrus.Logger,
	allowlistRepo allowlist.Repository,
) Handler {
	return &createAuthorizedUserHandler{
		logger:        logger,
		allowlistRepo: allowlistRepo,
	}
}

// Handle @Summary Add allow-list entries
// @Description Adds a single email or a bulk list; existing entries are reported, not overwritten
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body createAuthorizedUserRequest true "Email(s) to authorize"
// @Success 201 {object} map[string]interface{} "Per-email results"
// @Failure 400 {object} map[string]interface{} "No valid email provided"
// @Router /api/v1/admin/users [post]
func (h *createAuthorizedUserHandler) Handle(c *fiber.Ctx) error {
	var req createAuthorizedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	emails := make([]string, 0, len(req.Emails)+1)
	for _, e := range req.Emails {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	if len(emails) == 0 && strings.TrimSpace(req.Email) != "" {
		emails = append(emails, strings.TrimSpace(req.Email))
	}

	if len(emails) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No valid email(s) provided"})
	}

	role := req.Role
	if role == "" {
		role = allowlist.RoleModerator
	}

	addedBy := ""
	if claim := middleware.IdentityFromCtx(c); claim != nil {
		addedBy = claim.Email
	}

	results := make([]createAuthorizedUserResult, 0, len(emails))
	for _, email := range emails {
		id, err := uuid.NewV6()
		if err != nil {
			h.logger.WithError(err).Error("failed to generate UUID")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		entry := &allowlist.Entry{
			ID:      id,
			Email:   email,
			Name:    req.Name,
			Role:    role,
			Active:  true,
			AddedBy: addedBy,
		}

		err = h.allowlistRepo.Create(c.Context(), entry)
		switch {
		case err == nil:
			results = append(results, createAuthorizedUserResult{Email: email, Status: "created", User: entry})
		case errors.Is(err, domain.ErrDuplicateEmail):
			results = append(results, createAuthorizedUserResult{Email: email, Status: "exists"})
		default:
			h.logger.WithError(err).WithField("email", email).Error("failed to create allow-list entry")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User(s) processed successfully",
		"results": results,
	})
}
