package routes

import (
	"Backend-Formforge/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(admin fiber.Router, public fiber.Router) {
	public.Post("/auth/login", controllers.Login)
	admin.Get("/me", controllers.Me)
}
