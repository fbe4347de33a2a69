package routes

import (
	handlers "kartvizit.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes herkese açık kartvizit sayfasını tanımlar.
func registerPublicLinkRoutes(app *fiber.App) {
	publicHandler := handlers.NewLinkHandler()
	app.Get("/:slug", publicHandler.HandleLink)
}
