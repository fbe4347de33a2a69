package configs

import (
	"strings"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"go.uber.org/zap"
)

const (
	// CSRFContextKey üretilen token'ın locals anahtarı; view'lara CsrfToken olarak geçer.
	CSRFContextKey = "csrf"
	CSRFFormField  = "_csrf"
	CSRFHeader     = "X-Csrf-Token"
)

// SetupCSRF session deposunda tutulan token ile CSRF koruması kurar. Token
// formlarda _csrf alanından ya da X-Csrf-Token başlığından okunur.
func SetupCSRF() fiber.Handler {
	cfg := App()
	return csrf.New(csrf.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.UploadDriver != "s3" && strings.HasPrefix(c.Path(), cfg.UploadPublicURL+"/")
		},
		CookieName:     "kartvizit_csrf",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.IsProduction(),
		CookieHTTPOnly: true,
		Expiration:     2 * time.Hour,
		Session:        SetupSession(),
		SessionKey:     "fiber.csrf.token",
		ContextKey:     CSRFContextKey,
		Extractor:      csrfFromHeaderOrForm,
		ErrorHandler:   csrfErrorHandler,
	})
}

func csrfFromHeaderOrForm(c *fiber.Ctx) (string, error) {
	if token, err := csrf.CsrfFromHeader(CSRFHeader)(c); err == nil {
		return token, nil
	}
	return csrf.CsrfFromForm(CSRFFormField)(c)
}

func csrfErrorHandler(c *fiber.Ctx, err error) error {
	configslog.Log.Warn("CSRF doğrulaması başarısız",
		zap.String("path", c.Path()), zap.String("ip", c.IP()), zap.Error(err))

	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Geçersiz veya süresi dolmuş form anahtarı"})
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
		"Formun süresi doldu, lütfen sayfayı yenileyip tekrar deneyin.")
	back := c.Get(fiber.HeaderReferer)
	if back == "" || !strings.HasPrefix(back, c.BaseURL()+"/") {
		back = "/"
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}
