package http

import (
	"context"
	"time"

	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
)

// issueSession signs a token whose role and authorized flag reflect the
// caller's allow-list entry at the moment of issue. Users without an entry
// get the ordinary-user role and an unset flag; the moderation endpoint
// re-checks the live allow-list anyway.
func issueSession(
	ctx context.Context,
	jwtManager jwt.Manager,
	allowlistRepo allowlist.Repository,
	entity *user.User,
) (string, error) {
	role := allowlist.RoleUser
	authorized := false
	if entry, err := allowlistRepo.GetByEmail(ctx, entity.Email); err == nil {
		role = entry.Role
		authorized = entry.Active
	}
	return jwtManager.CreateToken(entity.ID.String(), entity.Email, role, authorized)
}

func setSessionCookie(c *fiber.Ctx, cfg *config.ServerConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cfg *config.ServerConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
