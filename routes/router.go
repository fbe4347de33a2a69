package routes

import (
	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/utils"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, registry *wizard.Registry) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSession())
	app.Use(configs.SetupCSRF())

	cfg := configs.App()
	if cfg.UploadDriver != "s3" {
		app.Static(cfg.UploadPublicURL, cfg.UploadDir, fiber.Static{MaxAge: 86400})
	}

	registerAuthRoutes(app, registry)
	registerDashboardRoutes(app, registry)
	registerPanelRoutes(app)

	app.Get("/", rootRedirector)

	// Public kartvizit rotası diğer gruplardan sonra gelmeli.
	registerPublicLinkRoutes(app)

	app.Use(notFoundHandler)
}

// initializeSession session store'u handler'ların erişebileceği şekilde locals'a koyar.
func initializeSession() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreKey, sessionStore)
		return c.Next()
	}
}

// rootRedirector kullanıcıyı rolüne göre yönlendirir; yetki kontrolü hedef gruptadır.
func rootRedirector(c *fiber.Ctx) error {
	return c.Redirect("/dashboard/cards", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("text/html", "application/json")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		err := c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
		if err != nil {
			configslog.Log.Error("404 sayfası işlenemedi", zap.Error(err))
		}
		return err
	}
}
