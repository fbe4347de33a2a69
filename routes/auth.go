package routes

import (
	auth_handlers "kartvizit.link/handlers/auth"
	"kartvizit.link/middlewares"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, registry *wizard.Registry) {
	authHandler := auth_handlers.NewAuthHandler(registry)
	authGroup := app.Group("/auth")

	authGroup.Get("/login", authHandler.ShowLogin)

	userRoutes := authGroup.Group("")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Get("/logout", authHandler.Logout)
	userRoutes.Post("/logout", authHandler.Logout)
}
