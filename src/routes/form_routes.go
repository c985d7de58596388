package routes

import (
	"Backend-Formforge/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// formRoutes กำหนด route สำหรับ form management
func formRoutes(admin fiber.Router, public fiber.Router) {
	forms := admin.Group("/forms")

	forms.Post("/", controllers.CreateForm)
	forms.Get("/", controllers.GetForms)
	forms.Get("/:id", controllers.GetFormByID)
	forms.Put("/:id", controllers.UpdateForm)
	forms.Patch("/:id", controllers.UpdateForm)
	forms.Post("/:id/publish", controllers.PublishForm)
	forms.Post("/:id/archive", controllers.ArchiveForm)
	forms.Post("/:id/unarchive", controllers.UnarchiveForm)
	forms.Post("/:id/duplicate", controllers.DuplicateForm)
	forms.Get("/:id/versions", controllers.GetFormVersions)
	forms.Get("/:id/versions/:version", controllers.GetFormVersion)

	// Public read path: published schema by slug, plus the respondent's
	// draft progress store.
	public.Get("/forms/:slug", controllers.GetPublicForm)
	public.Get("/forms/:slug/draft", controllers.GetDraft)
	public.Post("/forms/:slug/draft", controllers.InitDraft)
	public.Put("/forms/:slug/draft", controllers.UpdateDraft)
	public.Delete("/forms/:slug/draft", controllers.ClearDraft)
}
