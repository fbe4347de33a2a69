package routes

import (
	handlers "kartvizit.link/handlers/dashboard"
	"kartvizit.link/middlewares"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece IsSystem=true olan kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App, registry *wizard.Registry) {
	cardHandler := handlers.NewCardHandler()
	wizardHandler := handlers.NewWizardHandler(registry)

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.RequireSystem(),
	)

	dashboardGroup.Get("/cards", cardHandler.ListCards)
	dashboardGroup.Post("/cards/delete/:id", cardHandler.DeleteCard)
	dashboardGroup.Delete("/cards/delete/:id", cardHandler.DeleteCard)

	// --- Sihirbaz ---
	dashboardGroup.Get("/cards/create", wizardHandler.ShowCreate)
	dashboardGroup.Get("/cards/wizard", wizardHandler.ShowWizard)
	dashboardGroup.Get("/cards/edit/:slug", wizardHandler.ShowEdit)

	wizardGroup := dashboardGroup.Group("/cards/wizard")
	wizardGroup.Post("/submit", wizardHandler.Submit)
	wizardGroup.Post("/back", wizardHandler.Back)
	wizardGroup.Post("/jump/:step", wizardHandler.Jump)
	wizardGroup.Post("/refresh", wizardHandler.Refresh)
	wizardGroup.Post("/services/save", wizardHandler.SaveServiceEntry)
	wizardGroup.Post("/services/edit/:id", wizardHandler.EditServiceEntry)
	wizardGroup.Post("/services/remove/:id", wizardHandler.RemoveServiceEntry)
	wizardGroup.Post("/services/cancel", wizardHandler.CancelServiceEdit)
	wizardGroup.Post("/gallery/add", wizardHandler.AddGalleryImages)
	wizardGroup.Post("/gallery/remove/:index", wizardHandler.RemoveGalleryImage)
}
