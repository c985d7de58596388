package routes

import (
	"Backend-Formforge/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	public := app.Group("/")
	admin := app.Group("/admin", middleware.AuthJWT)

	authRoutes(admin, public)
	formRoutes(admin, public)
	submissionRoutes(admin, public)
	applicationRoutes(admin)
	uploadRoutes(public)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
