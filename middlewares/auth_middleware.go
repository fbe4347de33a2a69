package middlewares

import (
	"errors"
	"strings"

	"kartvizit.link/auth"
	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TokenCookieName kimlik servisinin token'ı yazdığı cookie.
const TokenCookieName = "token"

func tokenFromRequest(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies(TokenCookieName)
}

// AuthMiddleware token'ı doğrular ve principal'ı c.UserContext() içine koyar.
// Geçersiz ya da eksik token'da giriş sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	cfg := configs.App()
	raw := tokenFromRequest(c)
	if raw == "" {
		return unauthenticated(c, cfg.AuthLoginURL)
	}
	p, err := auth.ParseToken(cfg.JWTSecret, raw)
	if err != nil {
		if !errors.Is(err, auth.ErrExpiredToken) {
			configslog.Log.Warn("Geçersiz token ile erişim denemesi", zap.String("path", c.Path()), zap.Error(err))
		}
		c.ClearCookie(TokenCookieName)
		return unauthenticated(c, cfg.AuthLoginURL)
	}

	c.SetUserContext(auth.WithPrincipal(c.UserContext(), p))
	c.Locals("userID", p.UserID)
	c.Locals("isSystem", p.IsSystem)
	c.Locals("userName", p.Name)
	return c.Next()
}

func unauthenticated(c *fiber.Ctx, loginURL string) error {
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Oturum açmanız gerekiyor"})
	}
	return c.Redirect(loginURL, fiber.StatusFound)
}

// RequireSystem yalnızca sistem yöneticilerine izin verir; diğerlerini panele yönlendirir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c.UserContext())
		if !ok {
			return unauthenticated(c, configs.App().AuthLoginURL)
		}
		if !p.IsSystem {
			return c.Redirect("/panel/cards", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireUser yalnızca normal kullanıcılara izin verir; yöneticileri dashboard'a yönlendirir.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c.UserContext())
		if !ok {
			return unauthenticated(c, configs.App().AuthLoginURL)
		}
		if p.IsSystem {
			return c.Redirect("/dashboard/cards", fiber.StatusFound)
		}
		return c.Next()
	}
}
