package routes

import (
	panel_handlers "kartvizit.link/handlers/panel"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar.
// Sadece normal kullanıcıların (IsSystem == false) erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	cardHandler := panel_handlers.NewPanelCardHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.RequireUser(),
	)

	panelGroup.Get("/cards", cardHandler.ListCards)
	panelGroup.Get("/cards/:slug", cardHandler.ShowCard)
}
