package routes

import (
	"Backend-Formforge/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func uploadRoutes(public fiber.Router) {
	uploads := public.Group("/uploads")

	uploads.Post("/ref", controllers.GenerateUploadRef)
	uploads.Get("/files/:id", controllers.ServeUploadFile)
	uploads.Put("/:handle", controllers.PutUpload)
	uploads.Get("/:id", controllers.GetUpload)
}
