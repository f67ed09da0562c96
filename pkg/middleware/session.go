package middleware

import (
	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// sessionMiddleware decodes the session cookie into an identity claim and
// stores it in the request context. A missing or invalid cookie is not an
// error: the request simply proceeds anonymous, and downstream gates decide
// what anonymity means for them.
type sessionMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

func NewSessionMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
) Middleware {
	return &sessionMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *sessionMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(common.SessionCookieName)
		if token == "" {
			return ctx.Next()
		}

		claim, err := m.jwtManager.DecodeToken(token)
		if err != nil {
			m.logger.WithError(err).Debug("session token rejected")
			return ctx.Next()
		}

		ctx.Locals(common.IdentityContextKey, claim)

		return ctx.Next()
	}
}

// IdentityFromCtx returns the decoded claim, or nil for anonymous callers.
func IdentityFromCtx(ctx *fiber.Ctx) *jwt.IdentityClaim {
	claim, ok := ctx.Locals(common.IdentityContextKey).(*jwt.IdentityClaim)
	if !ok {
		return nil
	}
	return claim
}
