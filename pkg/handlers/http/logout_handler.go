package http

import (
	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/gofiber/fiber/v2"
)

type logoutHandler struct {
	cfg *config.ServerConfig
}

func NewLogoutHandler(cfg *config.ServerConfig) Handler {
	return &logoutHandler{cfg: cfg}
}

func (h *logoutHandler) Handle(c *fiber.Ctx) error {
	clearSessionCookie(c, h.cfg)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
