package http

import (
	"github.com/devfest-tools/modgate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type meHandler struct{}

func NewMeHandler() Handler {
	return &meHandler{}
}

// Handle echoes the decoded identity claim. Anonymous callers get a 200
// with a null user rather than an error; the distinction matters to UI code
// that polls this endpoint to decide what to render.
func (h *meHandler) Handle(c *fiber.Ctx) error {
	claim := middleware.IdentityFromCtx(c)
	if claim == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": nil})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":           claim.UserID,
			"email":        claim.Email,
			"role":         claim.Role,
			"isAuthorized": claim.IsAuthorized,
		},
	})
}
