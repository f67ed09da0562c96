package middleware

import (
	"github.com/devfest-tools/modgate/pkg/app/authorization"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// adminAuthMiddleware guards the allow-list management endpoints. Admin
// status is re-checked against the live allow-list on every request, so a
// deactivated admin loses access immediately rather than at token expiry.
type adminAuthMiddleware struct {
	logger     *logrus.Logger
	authorizer authorization.Checker
}

func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	authorizer authorization.Checker,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		authorizer: authorizer,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claim := IdentityFromCtx(ctx)
		if claim == nil || claim.Email == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}

		if !m.authorizer.IsAdmin(ctx.UserContext(), claim.Email) {
			m.logger.WithField("email", claim.Email).Info("admin access denied")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}

		return ctx.Next()
	}
}
