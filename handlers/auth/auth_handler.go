package handlers

import (
	"net/url"

	"kartvizit.link/configs"
	"kartvizit.link/middlewares"
	"kartvizit.link/utils"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler oturum açma ve kapatma yönlendirmeleri. Kimlik doğrulama harici
// servistedir; burada yalnızca token cookie'si yönetilir.
type AuthHandler struct {
	registry *wizard.Registry
}

func NewAuthHandler(registry *wizard.Registry) *AuthHandler {
	return &AuthHandler{registry: registry}
}

// ShowLogin kimlik servisi ayrı bir adreste ise oraya yönlendirir, değilse
// bilgilendirme sayfasını gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	loginURL := configs.App().AuthLoginURL
	if u, err := url.Parse(loginURL); err == nil && u.IsAbs() {
		q := u.Query()
		q.Set("redirect", c.BaseURL()+"/")
		u.RawQuery = q.Encode()
		return c.Redirect(u.String(), fiber.StatusFound)
	}
	return c.Render("auth/login", fiber.Map{"Title": "Giriş"}, "layouts/error_layout")
}

// Logout token cookie'sini, oturumu ve oturuma bağlı sihirbazı temizler.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(middlewares.TokenCookieName)
	if sid, err := utils.SessionID(c); err == nil {
		h.registry.Drop(sid)
	}
	if sess, err := utils.SessionStart(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}
