package routes

import (
	"Backend-Formforge/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func applicationRoutes(admin fiber.Router) {
	apps := admin.Group("/applications")

	apps.Post("/", controllers.CreateApplication)
	apps.Get("/", controllers.GetApplications)
	apps.Get("/:id", controllers.GetApplication)
	apps.Patch("/:id/fields", controllers.UpdateApplicationField)
	apps.Get("/:id/history", controllers.GetApplicationHistory)
}
