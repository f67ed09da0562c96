package middleware

import (
	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

// Middleware converts panics into a shape-compatible 500 body. The caller
// must always receive a well-formed response, never a bare failure.
func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				m.logger.WithFields(logrus.Fields{
					"error": r,
					"path":  c.Path(),
				}).Error("HTTP server panic recovered")

				fallback := moderation.SafeFallback()
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"cocViolation": fallback.CocViolation,
					"nsfw":         fallback.NSFW,
					"rubbish":      fallback.Rubbish,
					"feedback":     moderation.InternalErrorFeedback,
					"error":        "Something went wrong",
				})
			}
		}()

		return c.Next()
	}
}
